//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/treb-viewer/internal/adapters"
	"github.com/trebuchet-org/treb-viewer/internal/config"
	"github.com/trebuchet-org/treb-viewer/internal/logging"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewLoadDeployment,
		wire.Bind(new(usecase.DeploymentLoader), new(*usecase.LoadDeployment)),
		usecase.NewContractViewer,
		usecase.NewFetchContracts,

		// App
		NewApp,
	)
	return nil, nil
}
