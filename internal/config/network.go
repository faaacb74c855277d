package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/trebuchet-org/treb-viewer/internal/domain/config"
)

// defaultNetworks are the well-known networks the viewer can resolve without a foundry.toml
var defaultNetworks = []config.Network{
	{ChainID: 1, Name: "mainnet", ExplorerURL: "https://etherscan.io"},
	{ChainID: 11155111, Name: "sepolia", ExplorerURL: "https://sepolia.etherscan.io"},
	{ChainID: 17000, Name: "holesky", ExplorerURL: "https://holesky.etherscan.io"},
	{ChainID: 10, Name: "optimism", ExplorerURL: "https://optimistic.etherscan.io"},
	{ChainID: 42161, Name: "arbitrum", ExplorerURL: "https://arbiscan.io"},
	{ChainID: 137, Name: "polygon", ExplorerURL: "https://polygonscan.com"},
	{ChainID: 8453, Name: "base", ExplorerURL: "https://basescan.org"},
	{ChainID: 43114, Name: "avalanche", ExplorerURL: "https://snowtrace.io"},
	{ChainID: 56, Name: "bsc", ExplorerURL: "https://bscscan.com"},
	{ChainID: 42220, Name: "celo", ExplorerURL: "https://celoscan.io"},
	{ChainID: 59144, Name: "linea", ExplorerURL: "https://lineascan.build"},
	{ChainID: 534352, Name: "scroll", ExplorerURL: "https://scrollscan.com"},
}

// ResolveNetwork resolves a network by name or chain ID. RPC endpoints from
// foundry.toml are attached when present. Unknown chain IDs resolve to an
// ad-hoc network.
func ResolveNetwork(input string, foundry *config.FoundryConfig) (*config.Network, error) {
	if input == "" {
		return nil, fmt.Errorf("network not specified")
	}

	var network *config.Network
	for i := range defaultNetworks {
		if strings.EqualFold(defaultNetworks[i].Name, input) {
			n := defaultNetworks[i]
			network = &n
			break
		}
	}

	if network == nil {
		if chainID, err := strconv.ParseUint(input, 10, 64); err == nil {
			network = &config.Network{ChainID: chainID, Name: fmt.Sprintf("chain-%d", chainID)}
			for i := range defaultNetworks {
				if defaultNetworks[i].ChainID == chainID {
					n := defaultNetworks[i]
					network = &n
					break
				}
			}
		}
	}

	if network == nil {
		return nil, fmt.Errorf("unknown network: %s", input)
	}

	if foundry != nil {
		if rpc, ok := foundry.RpcEndpoints[input]; ok {
			network.RPCURL = rpc
		} else if rpc, ok := foundry.RpcEndpoints[network.Name]; ok {
			network.RPCURL = rpc
		}
	}

	return network, nil
}

// etherscanFor returns the foundry.toml etherscan entry for a network, if any
func etherscanFor(network *config.Network, foundry *config.FoundryConfig) (config.EtherscanConfig, bool) {
	if foundry == nil || network == nil {
		return config.EtherscanConfig{}, false
	}
	if ec, ok := foundry.Etherscan[network.Name]; ok {
		return ec, true
	}
	ec, ok := foundry.Etherscan[strconv.FormatUint(network.ChainID, 10)]
	return ec, ok
}
