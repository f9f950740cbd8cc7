//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/mints-deployer/internal/adapters"
	"github.com/trebuchet-org/mints-deployer/internal/config"
	"github.com/trebuchet-org/mints-deployer/internal/logging"
	"github.com/trebuchet-org/mints-deployer/internal/usecase"
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
		usecase.NewInitializationEncoder,
		usecase.NewSafeValidator,
		usecase.NewDeployMintsManager,
		usecase.NewListChains,
		usecase.NewManagePremints,

		// App
		NewApp,
	)
	return nil, nil
}
