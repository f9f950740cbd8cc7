package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/mints-deployer/internal/domain/config"
)

// LoadEnvFiles loads .env.local then .env from the project root. Variables
// already set in the process win over both, and .env.local wins over .env.
// Missing files are ignored.
func LoadEnvFiles(projectRoot string) error {
	for _, name := range []string{".env.local", ".env"} {
		path := filepath.Join(projectRoot, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}

// loadRPCEndpoints reads [rpc_endpoints] from foundry.toml and expands env
// references. A project without foundry.toml has no endpoints.
func loadRPCEndpoints(projectRoot string) (map[string]string, error) {
	foundryPath := filepath.Join(projectRoot, "foundry.toml")

	var cfg config.FoundryConfig
	if _, err := toml.DecodeFile(foundryPath, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to parse foundry.toml: %w", err)
	}

	endpoints := make(map[string]string, len(cfg.RpcEndpoints))
	for name, raw := range cfg.RpcEndpoints {
		url := os.ExpandEnv(raw)
		if url == "" {
			continue
		}
		endpoints[name] = url
	}
	return endpoints, nil
}
