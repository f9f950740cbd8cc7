package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
	"github.com/trebuchet-org/mints-deployer/internal/domain/config"
)

const (
	// projectMarker is the directory that identifies a deployment project root
	projectMarker = "deterministicConfig"

	DefaultTurnkeyBaseURL = "https://api.turnkey.com"
	DefaultPremintAPIBase = "https://api.zora.co/"
)

// envBindings maps config keys to env vars that don't follow the MINTS_ prefix
var envBindings = map[string]string{
	"project_root":            "MINTS_CONFIG_ROOT",
	"ci":                      "CI",
	"turnkey.api_public_key":  "TURNKEY_API_PUBLIC_KEY",
	"turnkey.api_private_key": "TURNKEY_API_PRIVATE_KEY",
	"turnkey.organization_id": "TURNKEY_ORGANIZATION_ID",
	"turnkey.private_key_id":  "TURNKEY_PRIVATE_KEY_ID",
	"turnkey.target_address":  "TURNKEY_TARGET_ADDRESS",
}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		return nil, fmt.Errorf("project root is not set")
	}

	output := config.OutputFormat(strings.ToLower(v.GetString("output")))
	switch output {
	case config.OutputText, config.OutputYAML:
	default:
		return nil, fmt.Errorf("unsupported output format %q (expected text or yaml)", output)
	}

	backend := config.SignerBackend(strings.ToLower(v.GetString("signer.backend")))
	switch backend {
	case config.SignerTurnkey, config.SignerRPC, config.SignerLocal:
	default:
		return nil, fmt.Errorf("%w: unknown signer backend %q", domain.ErrSignerMisconfigured, backend)
	}

	endpoints, err := loadRPCEndpoints(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		ProxyName:      v.GetString("proxy_name"),
		RPCURL:         v.GetString("rpc_url"),
		DryRun:         v.GetBool("dry_run"),
		Yes:            v.GetBool("yes"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive") || v.GetBool("ci"),
		Output:         output,
		LogLevel:       v.GetString("log_level"),
		Timeout:        v.GetDuration("timeout"),
		Signer: config.SignerConfig{
			Backend: backend,
			Turnkey: config.TurnkeyConfig{
				BaseURL:        v.GetString("turnkey.base_url"),
				APIPublicKey:   v.GetString("turnkey.api_public_key"),
				APIPrivateKey:  v.GetString("turnkey.api_private_key"),
				OrganizationID: v.GetString("turnkey.organization_id"),
				PrivateKeyID:   v.GetString("turnkey.private_key_id"),
				TargetAddress:  v.GetString("turnkey.target_address"),
				PollInterval:   v.GetDuration("turnkey.poll_interval"),
			},
			RPC: config.RemoteSignerConfig{
				URL:     v.GetString("signer.rpc_url"),
				APIKey:  v.GetString("signer.api_key"),
				Address: v.GetString("signer.address"),
			},
			PrivateKey: v.GetString("private_key"),
		},
		PremintAPIBase: v.GetString("premint_api_base"),
		RPCEndpoints:   endpoints,
		RPCEnv:         collectRPCEnv(os.Environ()),
	}

	return cfg, nil
}

// ResolveProjectRoot picks the project root: an explicit path, then
// MINTS_CONFIG_ROOT, then the nearest ancestor of the working directory
// holding deterministicConfig/, then the working directory itself.
func ResolveProjectRoot(explicit string) (string, error) {
	if explicit == "" {
		explicit = os.Getenv(envBindings["project_root"])
	}
	if explicit != "" {
		return filepath.Abs(explicit)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if root, ok := FindProjectRoot(cwd); ok {
		return root, nil
	}
	return cwd, nil
}

// FindProjectRoot walks up from start to find a directory containing deterministicConfig/
func FindProjectRoot(start string) (string, bool) {
	dir := start
	for {
		if info, err := os.Stat(filepath.Join(dir, projectMarker)); err == nil && info.IsDir() {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("MINTS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			panic(err)
		}
	}

	// Set defaults
	v.SetDefault("project_root", projectRoot)
	v.SetDefault("proxy_name", domain.DefaultProxyName)
	v.SetDefault("output", string(config.OutputText))
	v.SetDefault("log_level", "info")
	v.SetDefault("timeout", "10m")
	v.SetDefault("signer.backend", string(config.SignerTurnkey))
	v.SetDefault("turnkey.base_url", DefaultTurnkeyBaseURL)
	v.SetDefault("turnkey.poll_interval", "1s")
	v.SetDefault("premint_api_base", DefaultPremintAPIBase)

	if cmd == nil {
		return v
	}

	bind := func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if key == "root" {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	}
	cmd.Flags().VisitAll(bind)
	cmd.InheritedFlags().VisitAll(bind)

	return v
}
