package route

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/trebuchet-org/treb-viewer/internal/domain/config"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

// URLRouter keeps the viewer route as a URL. The query can be rewritten in
// place; the scheme, host and path stay as configured.
type URLRouter struct {
	mu  sync.RWMutex
	url *url.URL
}

// NewURLRouter creates a router starting at cfg.RouteURL
func NewURLRouter(cfg *config.RuntimeConfig) (*URLRouter, error) {
	u, err := url.Parse(cfg.RouteURL)
	if err != nil {
		return nil, fmt.Errorf("invalid route url %q: %w", cfg.RouteURL, err)
	}
	return &URLRouter{url: u}, nil
}

// Query returns a copy of the current query
func (r *URLRouter) Query() url.Values {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.url.Query()
}

// Replace swaps the whole query for query
func (r *URLRouter) Replace(query url.Values) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.url.RawQuery = query.Encode()
	return nil
}

// URL returns the current route. Commas are left unescaped so address lists
// stay readable.
func (r *URLRouter) URL() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u := *r.url
	return unescapeCommas(u.String())
}

func unescapeCommas(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && s[i+1] == '2' && (s[i+2] == 'C' || s[i+2] == 'c') {
			out = append(out, ',')
			i += 2
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

// Ensure the router implements the interface
var _ usecase.Router = (*URLRouter)(nil)
