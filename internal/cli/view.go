package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-viewer/internal/cli/viewer"
	"github.com/trebuchet-org/treb-viewer/internal/domain"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

// NewViewCmd creates the view command
func NewViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [address...]",
		Short: "Open the contract viewer",
		Long: `Open the terminal contract viewer.

Addresses given as arguments are added to the viewer URL and loaded on start,
alongside any addresses already listed in --url. Type an address into the
address bar to load more. On exit the viewer URL is printed so the session can
be resumed.

Examples:
  treb-viewer view 0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48
  treb-viewer view --url 'treb-viewer://contracts?address=0xa0b8...,0xdac1...'
  treb-viewer view -n base 0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if len(args) > 0 {
				addresses := mergeRouteAddresses(app.Viewer.RouteAddresses(), args)
				query := url.Values{}
				query.Set(usecase.RouteParam, strings.Join(addresses, ","))
				if err := app.Router.Replace(query); err != nil {
					return fmt.Errorf("failed to set viewer URL: %w", err)
				}
			}

			finalURL, err := viewer.Run(cmd.Context(), app.Viewer, app.Config, app.Log)
			if err != nil {
				return fmt.Errorf("viewer failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), finalURL)
			return nil
		},
	}

	cmd.Flags().String("url", "", "Viewer URL to restore (e.g. treb-viewer://contracts?address=0x...)")

	return cmd
}

// mergeRouteAddresses appends args to the route addresses, lowercasing valid
// addresses and dropping duplicates. Invalid entries are kept so mounting
// reports them.
func mergeRouteAddresses(route, args []string) []string {
	return lo.Uniq(lo.Map(append(append([]string{}, route...), args...), func(raw string, _ int) string {
		if address, err := domain.NormalizeAddress(raw); err == nil {
			return address
		}
		return raw
	}))
}
