package domain

import "fmt"

// Chain describes an EVM chain the deployer can target.
type Chain struct {
	ID          uint64   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Network     string   `json:"network" yaml:"network"`
	RPCURLs     []string `json:"rpcUrls" yaml:"rpcUrls"`
	ExplorerURL string   `json:"explorerUrl,omitempty" yaml:"explorerUrl,omitempty"`
	Testnet     bool     `json:"testnet" yaml:"testnet"`
}

// Clone returns a deep copy so callers can't mutate a shared table entry.
func (c *Chain) Clone() *Chain {
	out := *c
	out.RPCURLs = append([]string(nil), c.RPCURLs...)
	return &out
}

// RPCURL returns the preferred RPC endpoint, or "" when none is known.
func (c *Chain) RPCURL() string {
	if len(c.RPCURLs) == 0 {
		return ""
	}
	return c.RPCURLs[0]
}

func (c *Chain) String() string {
	return fmt.Sprintf("%s (%d)", c.Name, c.ID)
}
