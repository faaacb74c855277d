package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string

	// Network the viewer resolves addresses on
	Network *Network

	// Explorer settings
	EtherscanAPIKey string
	ExplorerAPIURL  string
	SourcifyURL     string
	RequestTimeout  time.Duration

	// Viewer settings
	RouteURL           string
	MaxConcurrentLoads int
	HighlightStyle     string

	// Execution settings
	Debug          bool
	NonInteractive bool
	TUI            bool // terminal UI owns stdout/stderr
	LogFile        string

	// Resolved configurations, nil outside a Foundry project
	FoundryConfig *FoundryConfig
}

// Network represents network configuration
type Network struct {
	ChainID     uint64 `json:"chainId"`
	Name        string `json:"name"`
	RPCURL      string `json:"rpcUrl"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}
