package app

import (
	"log/slog"

	"github.com/trebuchet-org/treb-viewer/internal/domain/config"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Router   usecase.Router
	Selector usecase.SourceSelector

	// Use cases
	Viewer         *usecase.ContractViewer
	FetchContracts *usecase.FetchContracts
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	router usecase.Router,
	selector usecase.SourceSelector,
	viewer *usecase.ContractViewer,
	fetchContracts *usecase.FetchContracts,
) (*App, error) {
	return &App{
		Config:         cfg,
		Log:            log,
		Router:         router,
		Selector:       selector,
		Viewer:         viewer,
		FetchContracts: fetchContracts,
	}, nil
}
