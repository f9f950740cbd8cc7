package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/trebuchet-org/mints-deployer/internal/domain/config"
	"github.com/trebuchet-org/mints-deployer/internal/usecase"
)

// Prompter asks a yes/no question
type Prompter func(label string) (bool, error)

// Confirmer asks the operator before the simulated transaction is broadcast
type Confirmer struct {
	config *config.RuntimeConfig
	prompt Prompter
	out    io.Writer
}

// NewConfirmer creates a confirmer backed by a promptui prompt
func NewConfirmer(cfg *config.RuntimeConfig) *Confirmer {
	return &Confirmer{config: cfg, prompt: promptConfirm, out: color.Error}
}

// NewConfirmerWithPrompter creates a confirmer with a custom prompt
func NewConfirmerWithPrompter(cfg *config.RuntimeConfig, prompt Prompter, out io.Writer) *Confirmer {
	return &Confirmer{config: cfg, prompt: prompt, out: out}
}

// ConfirmBroadcast shows the plan summary and asks to proceed. Runs that
// can't prompt (--yes, --non-interactive, CI) proceed without asking.
func (c *Confirmer) ConfirmBroadcast(ctx context.Context, plan *usecase.DeploymentPlan) (bool, error) {
	if !c.config.Interactive() {
		return true, nil
	}

	manager := plan.Config.Manager
	yellow := color.New(color.FgYellow)
	fmt.Fprintf(c.out, "\nAbout to broadcast from %s on %s (chain %d)\n", plan.Signer.Hex(), plan.Chain.Name, plan.Chain.ID)
	fmt.Fprintf(c.out, "  %s -> %s\n", manager.ContractName, yellow.Sprint(manager.DeployedAddress.Hex()))
	if plan.Request != nil {
		fmt.Fprintf(c.out, "  gas limit %d, nonce %d\n", plan.Request.Gas, plan.Request.Nonce)
	}

	if err := ctx.Err(); err != nil {
		return false, err
	}
	return c.prompt("Broadcast transaction")
}

func promptConfirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		if errors.Is(err, promptui.ErrInterrupt) {
			return false, fmt.Errorf("prompt interrupted: %w", err)
		}
		return false, err
	}
	return true, nil
}

var _ usecase.BroadcastConfirmer = (*Confirmer)(nil)
