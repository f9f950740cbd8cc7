package network

import "github.com/trebuchet-org/mints-deployer/internal/domain"

// knownChains is the generic lookup table. Arbitrum Sepolia is deliberately
// absent; it is only reachable through its alias.
var knownChains = []domain.Chain{
	{ID: 1, Name: "Ethereum", Network: "mainnet", RPCURLs: []string{"https://cloudflare-eth.com"}, ExplorerURL: "https://etherscan.io"},
	{ID: 11155111, Name: "Sepolia", Network: "sepolia", RPCURLs: []string{"https://rpc.sepolia.org"}, ExplorerURL: "https://sepolia.etherscan.io", Testnet: true},
	{ID: 10, Name: "OP Mainnet", Network: "optimism", RPCURLs: []string{"https://mainnet.optimism.io"}, ExplorerURL: "https://optimistic.etherscan.io"},
	{ID: 11155420, Name: "OP Sepolia", Network: "optimism-sepolia", RPCURLs: []string{"https://sepolia.optimism.io"}, ExplorerURL: "https://sepolia-optimism.etherscan.io", Testnet: true},
	{ID: 8453, Name: "Base", Network: "base", RPCURLs: []string{"https://mainnet.base.org"}, ExplorerURL: "https://basescan.org"},
	{ID: 84532, Name: "Base Sepolia", Network: "base-sepolia", RPCURLs: []string{"https://sepolia.base.org"}, ExplorerURL: "https://sepolia.basescan.org", Testnet: true},
	{ID: 42161, Name: "Arbitrum One", Network: "arbitrum", RPCURLs: []string{"https://arb1.arbitrum.io/rpc"}, ExplorerURL: "https://arbiscan.io"},
	{ID: 7777777, Name: "Zora", Network: "zora", RPCURLs: []string{"https://rpc.zora.energy"}, ExplorerURL: "https://explorer.zora.energy"},
	{ID: 999999999, Name: "Zora Sepolia", Network: "zora-sepolia", RPCURLs: []string{"https://sepolia.rpc.zora.energy"}, ExplorerURL: "https://sepolia.explorer.zora.energy", Testnet: true},
	{ID: 81457, Name: "Blast", Network: "blast", RPCURLs: []string{"https://rpc.blast.io"}, ExplorerURL: "https://blastscan.io"},
	{ID: 137, Name: "Polygon", Network: "matic", RPCURLs: []string{"https://polygon-rpc.com"}, ExplorerURL: "https://polygonscan.com"},
	{ID: 31337, Name: "Foundry", Network: "foundry", RPCURLs: []string{"http://127.0.0.1:8545"}, Testnet: true},
}

var arbitrumSepolia = domain.Chain{
	ID:          421614,
	Name:        "Arbitrum Sepolia",
	Network:     "arbitrum-sepolia",
	RPCURLs:     []string{"https://sepolia-rollup.arbitrum.io/rpc"},
	ExplorerURL: "https://sepolia.arbiscan.io",
	Testnet:     true,
}

// arbitrumSepoliaAliases are matched after normalization
var arbitrumSepoliaAliases = []string{"arbitrum-sepolia", "arbitrumsepolia"}
