package config

import "strings"

const rpcEnvSuffix = "_RPC_URL"

// GenerateEnvVarName generates the conventional env var name for a network's RPC URL.
// Convention: uppercase, dashes/dots to underscores, append _RPC_URL.
// Examples: zora -> ZORA_RPC_URL, base-sepolia -> BASE_SEPOLIA_RPC_URL
func GenerateEnvVarName(networkName string) string {
	name := strings.ToUpper(networkName)
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return name + rpcEnvSuffix
}

// collectRPCEnv picks every non-empty *_RPC_URL entry out of a KEY=VALUE list
func collectRPCEnv(environ []string) map[string]string {
	out := make(map[string]string)
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || value == "" || !strings.HasSuffix(key, rpcEnvSuffix) {
			continue
		}
		out[key] = value
	}
	return out
}
