package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/mints-deployer/internal/app"
	"github.com/trebuchet-org/mints-deployer/internal/config"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command. The root command is the deployment itself.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mints-deployer <chain>",
		Short: "Deterministically deploy the Mints manager proxy",
		Long: `Deploys the Mints manager proxy through the proxy deployer contract.

The deployment is simulated first; the simulated transaction is then signed
and broadcast unchanged. The chain is given by name or network slug, for
example "zora", "Base Sepolia" or "arbitrum-sepolia".`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupApp,
		RunE:              runDeploy,
	}

	// Global flags
	rootCmd.PersistentFlags().String("root", "", "Project root containing deterministicConfig/")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text|yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug|info|warn|error)")

	// Deploy flags
	rootCmd.Flags().String("proxy-name", domain.DefaultProxyName, "Logical name of the deterministic config to deploy")
	rootCmd.Flags().String("rpc-url", "", "RPC URL, overrides the chain's configured endpoints")
	rootCmd.Flags().Bool("dry-run", false, "Simulate only, don't broadcast")
	rootCmd.Flags().BoolP("yes", "y", false, "Broadcast without asking for confirmation")

	rootCmd.AddCommand(NewChainsCmd())
	rootCmd.AddCommand(NewPremintCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// setupApp resolves the project, loads configuration and wires the app
func setupApp(cmd *cobra.Command, args []string) error {
	// Skip for help/version commands
	if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}

	rootFlag, _ := cmd.Flags().GetString("root")
	projectRoot, err := config.ResolveProjectRoot(rootFlag)
	if err != nil {
		return fmt.Errorf("failed to resolve project root: %w", err)
	}
	if err := config.LoadEnvFiles(projectRoot); err != nil {
		return err
	}

	v := config.SetupViper(projectRoot, cmd)

	appInstance, err := app.InitApp(v)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, appKey, appInstance)

	cmd.SetContext(ctx)
	return nil
}

// commandContext bounds the command context by the configured timeout.
// Callers defer the returned cancel.
func commandContext(cmd *cobra.Command, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(cmd.Context())
	}
	return context.WithTimeout(cmd.Context(), timeout)
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	if cmd.Context() == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
