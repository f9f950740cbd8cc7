package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateEnvVarName(t *testing.T) {
	tests := []struct {
		name        string
		networkName string
		want        string
	}{
		{
			name:        "simple network",
			networkName: "zora",
			want:        "ZORA_RPC_URL",
		},
		{
			name:        "network with dash",
			networkName: "base-sepolia",
			want:        "BASE_SEPOLIA_RPC_URL",
		},
		{
			name:        "already uppercase",
			networkName: "MAINNET",
			want:        "MAINNET_RPC_URL",
		},
		{
			name:        "network with dot",
			networkName: "polygon.zkevm",
			want:        "POLYGON_ZKEVM_RPC_URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateEnvVarName(tt.networkName))
		})
	}
}

func TestCollectRPCEnv(t *testing.T) {
	got := collectRPCEnv([]string{
		"ZORA_RPC_URL=https://zora.example",
		"BASE_SEPOLIA_RPC_URL=https://base-sepolia.example",
		"EMPTY_RPC_URL=",
		"HOME=/root",
		"MALFORMED_RPC_URL",
		"ODD_RPC_URL=https://a.example/?x=1",
	})

	assert.Equal(t, map[string]string{
		"ZORA_RPC_URL":         "https://zora.example",
		"BASE_SEPOLIA_RPC_URL": "https://base-sepolia.example",
		"ODD_RPC_URL":          "https://a.example/?x=1",
	}, got)
}

func TestLoadRPCEndpoints(t *testing.T) {
	t.Run("expands env references", func(t *testing.T) {
		tmpDir := t.TempDir()
		foundryContent := `[rpc_endpoints]
zora = "${MINTS_TEST_ZORA_RPC}"
base-sepolia = "https://sepolia.base.org"
unset = "${MINTS_TEST_UNSET_RPC}"
`
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "foundry.toml"), []byte(foundryContent), 0644))
		t.Setenv("MINTS_TEST_ZORA_RPC", "https://zora.example")

		endpoints, err := loadRPCEndpoints(tmpDir)
		require.NoError(t, err)
		assert.Equal(t, "https://zora.example", endpoints["zora"])
		assert.Equal(t, "https://sepolia.base.org", endpoints["base-sepolia"])
		assert.NotContains(t, endpoints, "unset")
	})

	t.Run("missing foundry.toml is empty", func(t *testing.T) {
		endpoints, err := loadRPCEndpoints(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, endpoints)
	})

	t.Run("invalid foundry.toml fails", func(t *testing.T) {
		tmpDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "foundry.toml"), []byte("[rpc_endpoints\n"), 0644))

		_, err := loadRPCEndpoints(tmpDir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "foundry.toml")
	})
}
