package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/treb-viewer/internal/domain/config"
)

// loadEnvFiles loads .env files from dir without overriding existing variables
func loadEnvFiles(dir string) {
	envFiles := []string{
		filepath.Join(dir, ".env"),
		filepath.Join(dir, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// loadFoundryConfig parses foundry.toml in projectRoot, expanding environment
// variables in RPC endpoints and etherscan settings. Returns nil when the
// project has no foundry.toml.
func loadFoundryConfig(projectRoot string) (*config.FoundryConfig, error) {
	foundryPath := filepath.Join(projectRoot, "foundry.toml")
	if _, err := os.Stat(foundryPath); err != nil {
		return nil, nil
	}

	var raw config.FoundryConfig
	if _, err := toml.DecodeFile(foundryPath, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse foundry.toml: %w", err)
	}

	cfg := &config.FoundryConfig{
		RpcEndpoints: make(map[string]string, len(raw.RpcEndpoints)),
		Etherscan:    make(map[string]config.EtherscanConfig, len(raw.Etherscan)),
	}
	for name, url := range raw.RpcEndpoints {
		cfg.RpcEndpoints[name] = os.ExpandEnv(url)
	}
	for network, ec := range raw.Etherscan {
		cfg.Etherscan[network] = config.EtherscanConfig{
			Key: os.ExpandEnv(ec.Key),
			URL: os.ExpandEnv(ec.URL),
		}
	}

	return cfg, nil
}
