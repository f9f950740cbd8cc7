package config

// FoundryConfig is the subset of foundry.toml read at startup
type FoundryConfig struct {
	RpcEndpoints map[string]string `toml:"rpc_endpoints"`
}
