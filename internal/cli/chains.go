package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/mints-deployer/internal/cli/render"
	"github.com/trebuchet-org/mints-deployer/internal/usecase"
)

// NewChainsCmd creates the chains command
func NewChainsCmd() *cobra.Command {
	var testnets, mainnets bool

	cmd := &cobra.Command{
		Use:   "chains",
		Short: "List the chains a deployment can target",
		Long: `List every chain the deployer knows about, with the RPC endpoint that would be used.

RPC endpoints can be overridden with <NETWORK>_RPC_URL environment variables or the
[rpc_endpoints] section of foundry.toml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd, app.Config.Timeout)
			defer cancel()
			result, err := app.ListChains.Run(ctx, usecase.ListChainsParams{
				TestnetsOnly: testnets,
				MainnetsOnly: mainnets,
			})
			if err != nil {
				return err
			}

			var renderer render.Renderer[*usecase.ListChainsResult] = render.NewChainsRenderer(cmd.OutOrStdout(), app.Config.Output)
			return renderer.Render(result)
		},
	}

	cmd.Flags().BoolVar(&testnets, "testnets", false, "Only list testnets")
	cmd.Flags().BoolVar(&mainnets, "mainnets", false, "Only list mainnets")
	cmd.MarkFlagsMutuallyExclusive("testnets", "mainnets")

	return cmd
}
