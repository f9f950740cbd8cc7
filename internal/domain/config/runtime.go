package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration.
// It is resolved once at startup and injected; nothing below the CLI reads
// the process environment.
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string

	// Deployment settings
	ProxyName string
	RPCURL    string // explicit --rpc-url, wins over every other source
	DryRun    bool
	Yes       bool

	// Execution settings
	Debug          bool
	NonInteractive bool
	Output         OutputFormat
	LogLevel       string
	Timeout        time.Duration

	Signer         SignerConfig
	PremintAPIBase string

	// RPC sources, snapshotted at startup
	RPCEndpoints map[string]string // foundry.toml [rpc_endpoints], env-expanded
	RPCEnv       map[string]string // <SLUG>_RPC_URL variables
}

// Interactive reports whether the operator can be prompted
func (c *RuntimeConfig) Interactive() bool {
	return !c.NonInteractive && !c.Yes
}

// OutputFormat selects how command results are rendered
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputYAML OutputFormat = "yaml"
)

// SignerBackend selects the signer implementation
type SignerBackend string

const (
	SignerTurnkey SignerBackend = "turnkey"
	SignerRPC     SignerBackend = "rpc"
	SignerLocal   SignerBackend = "local"
)

// SignerConfig holds the credentials of every supported signer backend.
// Only the section matching Backend is used.
type SignerConfig struct {
	Backend    SignerBackend
	Turnkey    TurnkeyConfig
	RPC        RemoteSignerConfig
	PrivateKey string
}

// TurnkeyConfig configures the Turnkey remote signer
type TurnkeyConfig struct {
	BaseURL        string
	APIPublicKey   string
	APIPrivateKey  string
	OrganizationID string
	PrivateKeyID   string
	TargetAddress  string
	PollInterval   time.Duration
}

// RemoteSignerConfig configures a JSON-RPC signer exposing eth_signTransaction
type RemoteSignerConfig struct {
	URL     string
	APIKey  string
	Address string
}
