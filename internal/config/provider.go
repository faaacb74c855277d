package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/treb-viewer/internal/domain/config"
)

const (
	DefaultExplorerAPIURL = "https://api.etherscan.io/v2/api"
	DefaultSourcifyURL    = "https://sourcify.dev/server"
	DefaultRouteURL       = "treb-viewer://contracts"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		projectRoot = "."
	}
	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	loadEnvFiles(absRoot)

	cfg := &config.RuntimeConfig{
		ProjectRoot:        absRoot,
		EtherscanAPIKey:    v.GetString("etherscan_api_key"),
		ExplorerAPIURL:     v.GetString("explorer_api_url"),
		SourcifyURL:        v.GetString("sourcify_url"),
		RequestTimeout:     v.GetDuration("request_timeout"),
		RouteURL:           v.GetString("route_url"),
		MaxConcurrentLoads: v.GetInt("max_concurrent_loads"),
		HighlightStyle:     v.GetString("highlight_style"),
		Debug:              v.GetBool("debug"),
		NonInteractive:     v.GetBool("non_interactive"),
		TUI:                v.GetBool("tui"),
		LogFile:            v.GetString("log_file"),
	}

	// .env files may have provided the key after viper read the environment
	if cfg.EtherscanAPIKey == "" {
		cfg.EtherscanAPIKey = os.Getenv("ETHERSCAN_API_KEY")
	}

	foundryConfig, err := loadFoundryConfig(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}
	cfg.FoundryConfig = foundryConfig

	network, err := ResolveNetwork(v.GetString("network"), foundryConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network: %w", err)
	}
	if rpcURL := v.GetString("rpc_url"); rpcURL != "" {
		network.RPCURL = rpcURL
	}
	cfg.Network = network

	if ec, ok := etherscanFor(network, foundryConfig); ok {
		if cfg.EtherscanAPIKey == "" {
			cfg.EtherscanAPIKey = ec.Key
		}
		if ec.URL != "" && cfg.ExplorerAPIURL == DefaultExplorerAPIURL {
			cfg.ExplorerAPIURL = ec.URL
		}
	}

	if cfg.MaxConcurrentLoads <= 0 {
		cfg.MaxConcurrentLoads = 1
	}

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find foundry.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		foundryToml := filepath.Join(dir, "foundry.toml")
		if _, err := os.Stat(foundryToml); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding foundry.toml
			return "", fmt.Errorf("not in a Foundry project (foundry.toml not found)")
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".treb"))
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".treb"))
	}

	// Set up environment variables
	v.SetEnvPrefix("TREB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	_ = v.BindEnv("etherscan_api_key", "TREB_ETHERSCAN_API_KEY", "ETHERSCAN_API_KEY")

	// Set defaults
	v.SetDefault("network", "mainnet")
	v.SetDefault("explorer_api_url", DefaultExplorerAPIURL)
	v.SetDefault("sourcify_url", DefaultSourcifyURL)
	v.SetDefault("route_url", DefaultRouteURL)
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("max_concurrent_loads", 4)
	v.SetDefault("highlight_style", "monokai")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if !f.Changed {
				return
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := v.BindPFlag(key, f); err != nil {
				panic(err)
			}
		})
	}

	return v
}
