package route_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/treb-viewer/internal/adapters/route"
	"github.com/trebuchet-org/treb-viewer/internal/domain/config"
)

func TestURLRouter(t *testing.T) {
	t.Run("reads the initial query", func(t *testing.T) {
		r, err := route.NewURLRouter(&config.RuntimeConfig{RouteURL: "treb-viewer://contracts?address=0xa,0xb"})
		require.NoError(t, err)
		assert.Equal(t, "0xa,0xb", r.Query().Get("address"))
	})

	t.Run("replace overwrites the whole query", func(t *testing.T) {
		r, err := route.NewURLRouter(&config.RuntimeConfig{RouteURL: "treb-viewer://contracts?tab=abi&address=0xa"})
		require.NoError(t, err)

		require.NoError(t, r.Replace(url.Values{"address": {"0xa,0xb"}}))
		assert.Equal(t, url.Values{"address": {"0xa,0xb"}}, r.Query())
		assert.Equal(t, "treb-viewer://contracts?address=0xa,0xb", r.URL())
	})

	t.Run("query copies are independent", func(t *testing.T) {
		r, err := route.NewURLRouter(&config.RuntimeConfig{RouteURL: "https://example.com/view"})
		require.NoError(t, err)

		q := r.Query()
		q.Set("address", "0xa")
		assert.Empty(t, r.Query().Get("address"))
		assert.Equal(t, "https://example.com/view", r.URL())
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := route.NewURLRouter(&config.RuntimeConfig{RouteURL: "://bad"})
		assert.Error(t, err)
	})
}
