package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/treb-viewer/internal/app"
	"github.com/trebuchet-org/treb-viewer/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "treb-viewer",
		Short: "Browse verified smart contract source from block explorers",
		Long: `treb-viewer loads verified contract source from Etherscan or Sourcify and
shows it in a terminal viewer with an outline of every contract, function
and event. The set of loaded addresses is kept in a viewer URL that can be
passed back with --url to restore a session.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			// A Foundry project is optional; it only contributes endpoints
			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				projectRoot = "."
			}

			// Set up viper
			v := config.SetupViper(projectRoot, cmd)

			// Bind flags whose names differ from their config keys
			bindCommandFlags(v, cmd)

			// Initialize app with DI
			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Store app in context
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, appKey, appInstance))

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to read from (name or chain ID, e.g. mainnet, 8453)")
	rootCmd.PersistentFlags().String("rpc-url", "", "RPC endpoint used to check for deployed code")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})

	viewCmd := NewViewCmd()
	viewCmd.GroupID = "main"
	rootCmd.AddCommand(viewCmd)

	fetchCmd := NewFetchCmd()
	fetchCmd.GroupID = "main"
	rootCmd.AddCommand(fetchCmd)

	// Version command
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// bindCommandFlags sets config keys for flags that SetupViper cannot map by name
func bindCommandFlags(v *viper.Viper, cmd *cobra.Command) {
	v.Set("tui", cmd.Name() == "view")

	if f := cmd.Flag("url"); f != nil && f.Changed {
		v.Set("route_url", f.Value.String())
	}
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
