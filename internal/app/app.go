package app

import (
	"log/slog"

	"github.com/trebuchet-org/mints-deployer/internal/domain/config"
	"github.com/trebuchet-org/mints-deployer/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	DeployMintsManager *usecase.DeployMintsManager
	ListChains         *usecase.ListChains
	ManagePremints     *usecase.ManagePremints
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	deployMintsManager *usecase.DeployMintsManager,
	listChains *usecase.ListChains,
	managePremints *usecase.ManagePremints,
) (*App, error) {
	return &App{
		Config:             cfg,
		Log:                log,
		DeployMintsManager: deployMintsManager,
		ListChains:         listChains,
		ManagePremints:     managePremints,
	}, nil
}
