package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/mints-deployer/internal/cli/render"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
	"github.com/trebuchet-org/mints-deployer/internal/usecase"
)

func runDeploy(cmd *cobra.Command, args []string) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	var chainName string
	if len(args) > 0 {
		chainName = args[0]
	}

	params := usecase.DeployMintsManagerParams{
		ChainName:   chainName,
		ProxyName:   app.Config.ProxyName,
		RPCURL:      app.Config.RPCURL,
		DryRun:      app.Config.DryRun,
		SkipConfirm: app.Config.Yes,
		Timeout:     app.Config.Timeout,
	}
	result, err := app.DeployMintsManager.Run(cmd.Context(), params)
	if errors.Is(err, domain.ErrMissingArgument) {
		_ = cmd.Usage()
	}

	// A mined but reverted transaction still has a result worth showing
	if result != nil {
		var renderer render.Renderer[*domain.DeploymentResult] = render.NewDeployRenderer(cmd.OutOrStdout(), app.Config.Output)
		if renderErr := renderer.Render(result); renderErr != nil && err == nil {
			err = renderErr
		}
	}
	return err
}
