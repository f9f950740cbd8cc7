package render

import (
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
	"gopkg.in/yaml.v3"
)

// DeployRenderer renders the outcome of a manager deployment
type DeployRenderer struct {
	out    io.Writer
	format Format
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer, format Format) *DeployRenderer {
	return &DeployRenderer{out: out, format: format}
}

// Render renders a dry-run plan or a finished deployment
func (r *DeployRenderer) Render(result *domain.DeploymentResult) error {
	if r.format == FormatYAML {
		return r.renderYAML(result)
	}

	bold := color.New(color.Bold)
	if result.DryRun {
		bold.Fprintln(r.out, "\nDry run: simulation succeeded, nothing was broadcast")
	} else {
		bold.Fprintln(r.out, "\nDeployment")
	}
	fmt.Fprintln(r.out, planTable(result))

	if warning := create2Warning(result); warning != "" {
		fmt.Fprintln(r.out, FormatWarning(warning))
	}

	if !result.DryRun {
		switch {
		case result.Reverted:
			fmt.Fprintln(r.out, FormatError(fmt.Sprintf("transaction %s reverted, %s was not deployed", result.TransactionHash.Hex(), managerName(result))))
			return nil
		case result.State == domain.DeploymentConfirmed:
			fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s deployed at %s", result.Config.Manager.ContractName, result.Config.Manager.PersistedAddress())))
		case result.TransactionHash != (common.Hash{}):
			fmt.Fprintln(r.out, FormatError(fmt.Sprintf("transaction %s was broadcast but not confirmed, check it before retrying", result.TransactionHash.Hex())))
			return nil
		default:
			fmt.Fprintln(r.out, FormatError(fmt.Sprintf("deployment ended in state %s", result.State)))
			return nil
		}
	}

	if len(result.VerificationCommands) > 0 {
		bold.Fprintln(r.out, "\nVerify with:")
		for _, command := range result.VerificationCommands {
			fmt.Fprintln(r.out, color.New(color.FgCyan).Sprint(command))
		}
	}
	return nil
}

func managerName(result *domain.DeploymentResult) string {
	if result.Config == nil {
		return result.ProxyName
	}
	return result.Config.Manager.ContractName
}

func planTable(result *domain.DeploymentResult) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{PaddingLeft: "  ", PaddingRight: "  "}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, Colors: text.Colors{text.Faint}},
		{Number: 2, Align: text.AlignLeft},
	})

	yellow := color.New(color.FgYellow)
	t.AppendRow(table.Row{"Chain", result.Chain.String()})
	t.AppendRow(table.Row{"Signer", result.Signer.Hex()})
	t.AppendRow(table.Row{"Proxy deployer", result.ProxyDeployer.Hex()})
	if result.Config != nil {
		t.AppendRow(table.Row{result.Config.Manager.ContractName, yellow.Sprint(result.Config.Manager.DeployedAddress.Hex())})
		t.AppendRow(table.Row{"Salt", result.Config.Manager.Salt.Hex()})
		t.AppendRow(table.Row{result.Config.Mints1155.ContractName, result.Config.Mints1155.DeployedAddress.Hex()})
	}
	if result.Initialization != nil {
		t.AppendRow(table.Row{"Proxy admin", result.Initialization.ProxyAdmin.Hex()})
		t.AppendRow(table.Row{"Implementation", result.Initialization.InitialImplementationAddress.Hex()})
	}
	if req := result.Request; req != nil {
		t.AppendRow(table.Row{"Gas limit", req.Gas})
		t.AppendRow(table.Row{"Nonce", req.Nonce})
		if req.IsDynamicFee() {
			t.AppendRow(table.Row{"Max fee", formatGwei(req.GasFeeCap)})
			t.AppendRow(table.Row{"Priority fee", formatGwei(req.GasTipCap)})
		} else {
			t.AppendRow(table.Row{"Gas price", formatGwei(req.GasPrice)})
		}
	}
	if result.TransactionHash != (common.Hash{}) {
		t.AppendRow(table.Row{"Transaction", result.TransactionHash.Hex()})
		t.AppendRow(table.Row{"Block", result.BlockNumber})
		t.AppendRow(table.Row{"Gas used", result.GasUsed})
	}
	return t.Render()
}

// create2Warning reports a persisted address that doesn't match the CREATE2
// derivation from the proxy deployer. Display only.
func create2Warning(result *domain.DeploymentResult) string {
	if result.Config == nil {
		return ""
	}
	manager := result.Config.Manager
	expected := manager.ExpectedCreate2Address(result.ProxyDeployer)
	if expected == manager.DeployedAddress {
		return ""
	}
	return fmt.Sprintf("persisted address %s differs from CREATE2 derivation %s", manager.DeployedAddress.Hex(), expected.Hex())
}

func formatGwei(wei *big.Int) string {
	if wei == nil {
		return "-"
	}
	gwei := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(params.GWei))
	return gwei.Text('f', 4) + " gwei"
}

type deployView struct {
	Chain                string       `yaml:"chain"`
	ChainID              uint64       `yaml:"chainId"`
	ProxyName            string       `yaml:"proxyName"`
	ProxyDeployer        string       `yaml:"proxyDeployer"`
	Signer               string       `yaml:"signer"`
	Manager              string       `yaml:"manager,omitempty"`
	Mints1155            string       `yaml:"mints1155,omitempty"`
	ProxyAdmin           string       `yaml:"proxyAdmin,omitempty"`
	Implementation       string       `yaml:"implementation,omitempty"`
	State                string       `yaml:"state"`
	DryRun               bool         `yaml:"dryRun"`
	Reverted             bool         `yaml:"reverted,omitempty"`
	Request              *requestView `yaml:"request,omitempty"`
	TransactionHash      string       `yaml:"transactionHash,omitempty"`
	BlockNumber          uint64       `yaml:"blockNumber,omitempty"`
	GasUsed              uint64       `yaml:"gasUsed,omitempty"`
	Warnings             []string     `yaml:"warnings,omitempty"`
	VerificationCommands []string     `yaml:"verificationCommands"`
}

type requestView struct {
	Gas       uint64 `yaml:"gas"`
	Nonce     uint64 `yaml:"nonce"`
	GasFeeCap string `yaml:"maxFeePerGas,omitempty"`
	GasTipCap string `yaml:"maxPriorityFeePerGas,omitempty"`
	GasPrice  string `yaml:"gasPrice,omitempty"`
}

func (r *DeployRenderer) renderYAML(result *domain.DeploymentResult) error {
	view := deployView{
		Chain:                result.Chain.Name,
		ChainID:              result.Chain.ID,
		ProxyName:            result.ProxyName,
		ProxyDeployer:        result.ProxyDeployer.Hex(),
		Signer:               result.Signer.Hex(),
		State:                string(result.State),
		DryRun:               result.DryRun,
		Reverted:             result.Reverted,
		BlockNumber:          result.BlockNumber,
		GasUsed:              result.GasUsed,
		VerificationCommands: result.VerificationCommands,
	}
	if result.Config != nil {
		view.Manager = result.Config.Manager.DeployedAddress.Hex()
		view.Mints1155 = result.Config.Mints1155.DeployedAddress.Hex()
	}
	if result.Initialization != nil {
		view.ProxyAdmin = result.Initialization.ProxyAdmin.Hex()
		view.Implementation = result.Initialization.InitialImplementationAddress.Hex()
	}
	if req := result.Request; req != nil {
		view.Request = &requestView{
			Gas:       req.Gas,
			Nonce:     req.Nonce,
			GasFeeCap: bigString(req.GasFeeCap),
			GasTipCap: bigString(req.GasTipCap),
			GasPrice:  bigString(req.GasPrice),
		}
	}
	if result.TransactionHash != (common.Hash{}) {
		view.TransactionHash = result.TransactionHash.Hex()
	}
	if warning := create2Warning(result); warning != "" {
		view.Warnings = append(view.Warnings, warning)
	}
	if result.Reverted {
		view.VerificationCommands = nil
	}
	return writeYAML(r.out, view)
}

func writeYAML(out io.Writer, v any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

func bigString(v *big.Int) string {
	if v == nil {
		return ""
	}
	return v.String()
}
