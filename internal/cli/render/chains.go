package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
	"github.com/trebuchet-org/mints-deployer/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ChainsRenderer renders the chain table
type ChainsRenderer struct {
	out    io.Writer
	format Format
}

// NewChainsRenderer creates a new chains renderer
func NewChainsRenderer(out io.Writer, format Format) *ChainsRenderer {
	return &ChainsRenderer{out: out, format: format}
}

// Render renders the list of chains
func (r *ChainsRenderer) Render(result *usecase.ListChainsResult) error {
	if r.format == FormatYAML {
		return writeYAML(r.out, result.Chains)
	}

	if len(result.Chains) == 0 {
		fmt.Fprintln(r.out, "No chains match")
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.AppendHeader(table.Row{"Chain ID", "Name", "Network", "Type", "RPC"})

	title := cases.Title(language.English)
	for _, chain := range result.Chains {
		kind := "mainnet"
		if chain.Testnet {
			kind = "testnet"
		}
		t.AppendRow(table.Row{chain.ID, color.New(color.Bold).Sprint(chain.Name), chain.Network, title.String(kind), chain.RPCURL()})
	}
	fmt.Fprintln(r.out, t.Render())

	testnets := lo.CountBy(result.Chains, func(c *domain.Chain) bool { return c.Testnet })
	fmt.Fprintf(r.out, "\n%d chains (%d testnets)\n", len(result.Chains), testnets)
	return nil
}
