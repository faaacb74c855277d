package explorer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/trebuchet-org/treb-viewer/internal/domain"
	"github.com/trebuchet-org/treb-viewer/internal/domain/config"
	"github.com/trebuchet-org/treb-viewer/internal/domain/models"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

// NamedFetcher is a SourceFetcher that can name itself in logs
type NamedFetcher interface {
	usecase.SourceFetcher
	Name() string
}

// FallbackFetcher tries each fetcher in order, moving on when a provider has
// no verified source or reports an API error (bad key, rate limit, NOTOK).
// Transport errors end the chain.
type FallbackFetcher struct {
	fetchers []NamedFetcher
	log      *slog.Logger
}

// NewFallbackFetcher creates a fetcher over the given providers
func NewFallbackFetcher(log *slog.Logger, fetchers ...NamedFetcher) *FallbackFetcher {
	return &FallbackFetcher{
		fetchers: fetchers,
		log:      log,
	}
}

// NewSourceFetcher creates the default fetcher chain: Etherscan, then Sourcify
func NewSourceFetcher(cfg *config.RuntimeConfig, log *slog.Logger) *FallbackFetcher {
	return NewFallbackFetcher(log,
		NewEtherscanClient(cfg, log),
		NewSourcifyClient(cfg, log),
	)
}

// FetchSource returns the first successful result
func (f *FallbackFetcher) FetchSource(ctx context.Context, chainID uint64, address string) (*models.VerifiedSource, error) {
	var errs []error
	for _, fetcher := range f.fetchers {
		source, err := fetcher.FetchSource(ctx, chainID, address)
		if err == nil {
			return source, nil
		}
		errs = append(errs, err)

		if !errors.Is(err, domain.ErrNotVerified) && !errors.Is(err, domain.ErrExplorer) {
			return nil, errors.Join(errs...)
		}
		f.log.Debug("source lookup failed, trying next provider", "provider", fetcher.Name(), "address", address, "error", err)
	}

	if len(errs) == 0 {
		return nil, errors.New("no source providers configured")
	}
	return nil, errors.Join(errs...)
}

// Ensure the fetcher implements the interface
var _ usecase.SourceFetcher = (*FallbackFetcher)(nil)
