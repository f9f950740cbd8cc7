package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
)

// PremintRenderer renders premint API results
type PremintRenderer struct {
	out    io.Writer
	format Format
}

// NewPremintRenderer creates a new premint renderer
func NewPremintRenderer(out io.Writer, format Format) *PremintRenderer {
	return &PremintRenderer{out: out, format: format}
}

// RenderRecord renders a single premint
func (r *PremintRenderer) RenderRecord(record *domain.PremintRecord) error {
	if r.format == FormatYAML {
		return writeYAML(r.out, record)
	}
	fmt.Fprintln(r.out, recordTable(record))
	return nil
}

// RenderCollection renders all premints of a collection
func (r *PremintRenderer) RenderCollection(collection *domain.PremintCollection) error {
	if r.format == FormatYAML {
		return writeYAML(r.out, collection)
	}

	color.New(color.Bold).Fprintf(r.out, "Collection %s\n", collection.CollectionAddress.Hex())
	if collection.Collection != nil {
		fmt.Fprintf(r.out, "  %s (%s)\n", collection.Collection.ContractName, collection.Collection.ContractURI)
	}
	if len(collection.Premints) == 0 {
		fmt.Fprintln(r.out, "No premints")
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.AppendHeader(table.Row{"UID", "Version", "Token URI", "Price (wei)", "Max Supply", "Deleted"})
	for _, p := range collection.Premints {
		tc := p.Premint.TokenConfig
		t.AppendRow(table.Row{p.Premint.UID, p.Premint.Version, tc.TokenURI, bigString(tc.PricePerToken), bigString(tc.MaxSupply), p.Premint.Deleted})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

// RenderNextUID renders the next free uid
func (r *PremintRenderer) RenderNextUID(uid uint64) error {
	if r.format == FormatYAML {
		return writeYAML(r.out, map[string]uint64{"nextUid": uid})
	}
	fmt.Fprintln(r.out, uid)
	return nil
}

// RenderAck renders the response to a stored signature
func (r *PremintRenderer) RenderAck(ack *domain.PremintSignatureAck) error {
	if r.format == FormatYAML {
		return writeYAML(r.out, ack)
	}
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Stored premint %d for %s", ack.UID, ack.CollectionAddress.Hex())))
	return nil
}

func recordTable(record *domain.PremintRecord) string {
	tc := record.Premint.TokenConfig

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.AppendRow(table.Row{"Collection", record.CollectionAddress.Hex()})
	t.AppendRow(table.Row{"UID", record.Premint.UID})
	t.AppendRow(table.Row{"Version", record.Premint.Version})
	t.AppendRow(table.Row{"Config version", record.ConfigVersion})
	t.AppendRow(table.Row{"Token URI", tc.TokenURI})
	t.AppendRow(table.Row{"Price (wei)", bigString(tc.PricePerToken)})
	t.AppendRow(table.Row{"Max supply", bigString(tc.MaxSupply)})
	t.AppendRow(table.Row{"Mint duration", tc.MintDuration})
	t.AppendRow(table.Row{"Royalty BPS", tc.RoyaltyBPS})
	t.AppendRow(table.Row{"Payout recipient", tc.PayoutRecipient.Hex()})
	t.AppendRow(table.Row{"Signer", record.Signer.Hex()})
	t.AppendRow(table.Row{"Deleted", record.Premint.Deleted})
	return t.Render()
}
