package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/mints-deployer/internal/cli/render"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
	"gopkg.in/yaml.v3"
)

// NewPremintCmd creates the premint command group
func NewPremintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "premint",
		Short: "Query and store premint signatures",
		Long: `Talk to the premint signature API. Every subcommand needs --chain-id; the
API base URL can be changed with MINTS_PREMINT_API_BASE.`,
	}

	cmd.PersistentFlags().Uint64("chain-id", 0, "Chain id of the collection")
	_ = cmd.MarkPersistentFlagRequired("chain-id")

	cmd.AddCommand(
		newPremintGetCmd(),
		newPremintListCmd(),
		newPremintNextUIDCmd(),
		newPremintPostCmd(),
	)
	return cmd
}

func newPremintGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <collection> <uid>",
		Short: "Fetch a single premint",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			chainID, _ := cmd.Flags().GetUint64("chain-id")
			collection, err := parseCollection(args[0])
			if err != nil {
				return err
			}
			uid, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid uid %q: %w", args[1], err)
			}

			ctx, cancel := commandContext(cmd, app.Config.Timeout)
			defer cancel()
			record, err := app.ManagePremints.Get(ctx, chainID, collection, uid)
			if err != nil {
				return err
			}
			return render.NewPremintRenderer(cmd.OutOrStdout(), app.Config.Output).RenderRecord(record)
		},
	}
}

func newPremintListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <collection>",
		Short: "List every premint of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			chainID, _ := cmd.Flags().GetUint64("chain-id")
			collection, err := parseCollection(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd, app.Config.Timeout)
			defer cancel()
			result, err := app.ManagePremints.ListCollection(ctx, chainID, collection)
			if err != nil {
				return err
			}
			return render.NewPremintRenderer(cmd.OutOrStdout(), app.Config.Output).RenderCollection(result)
		},
	}
}

func newPremintNextUIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next-uid <collection>",
		Short: "Print the next free premint uid of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			chainID, _ := cmd.Flags().GetUint64("chain-id")
			collection, err := parseCollection(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd, app.Config.Timeout)
			defer cancel()
			uid, err := app.ManagePremints.NextUID(ctx, chainID, collection)
			if err != nil {
				return err
			}
			return render.NewPremintRenderer(cmd.OutOrStdout(), app.Config.Output).RenderNextUID(uid)
		},
	}
}

func newPremintPostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Store a signed premint",
		Long: `Store a signed premint read from a YAML or JSON file:

  collectionAddress: "0x..."     # or a collection: block for new collections
  configVersion: "2"
  premint:
    uid: 1
    version: 1
    tokenConfig:
      tokenURI: ipfs://...
      maxSupply: "18446744073709551615"
      pricePerToken: "0"
      ...
  signature: "0x..."`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			chainID, _ := cmd.Flags().GetUint64("chain-id")
			path, _ := cmd.Flags().GetString("file")

			signed, err := readSignedPremint(path)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd, app.Config.Timeout)
			defer cancel()
			ack, err := app.ManagePremints.Post(ctx, chainID, signed)
			if err != nil {
				return err
			}
			return render.NewPremintRenderer(cmd.OutOrStdout(), app.Config.Output).RenderAck(ack)
		},
	}
	cmd.Flags().StringP("file", "f", "", "Signed premint file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

type signedPremintFile struct {
	Collection        *domain.ContractCreationConfig `yaml:"collection"`
	CollectionAddress *common.Address                `yaml:"collectionAddress"`
	ConfigVersion     domain.PremintConfigVersion    `yaml:"configVersion"`
	Premint           domain.PremintConfig           `yaml:"premint"`
	Signature         hexutil.Bytes                  `yaml:"signature"`
}

func readSignedPremint(path string) (*domain.SignedPremint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file signedPremintFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if file.ConfigVersion == "" {
		file.ConfigVersion = domain.PremintConfigV2
	}

	return &domain.SignedPremint{
		Collection:        file.Collection,
		CollectionAddress: file.CollectionAddress,
		ConfigVersion:     file.ConfigVersion,
		Premint:           file.Premint,
		Signature:         file.Signature,
	}, nil
}

func parseCollection(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid collection address %q", s)
	}
	return common.HexToAddress(s), nil
}
