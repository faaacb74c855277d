package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-viewer/internal/app"
	"github.com/trebuchet-org/treb-viewer/internal/cli/render"
	"github.com/trebuchet-org/treb-viewer/internal/domain"
	"github.com/trebuchet-org/treb-viewer/internal/domain/models"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

// NewFetchCmd creates the fetch command
func NewFetchCmd() *cobra.Command {
	var (
		includeImpl bool
		file        string
		output      string
		noSource    bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <address...>",
		Short: "Fetch verified contract source without the viewer",
		Long: `Fetch verified source for one or more addresses and print it.

The text format prints a metadata table and the source file list for every
contract, followed by one source file. Use --file to pick it by path; when a
contract has several files and no --file is given, an interactive picker is
shown (or the whole source is printed in non-interactive mode).

Examples:
  treb-viewer fetch 0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48
  treb-viewer fetch 0xA0b8... --implementation --file FiatTokenV2_2.sol
  treb-viewer fetch 0xA0b8... 0xdAC1... -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.FetchContracts.Run(cmd.Context(), usecase.FetchContractsParams{
				Addresses:             args,
				IncludeImplementation: includeImpl,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderer := render.NewContractRenderer(out, !color.NoColor)
			if output != render.FormatText && output != "" {
				return render.NewFetchRenderer(renderer, output).Render(result)
			}

			for i, deployment := range result.Deployments {
				if i > 0 {
					fmt.Fprintln(out)
				}
				renderer.RenderContract(deployment)
				if noSource {
					continue
				}

				src, err := pickSource(cmd, app, deployment, file)
				if err != nil {
					return err
				}
				if src != nil {
					renderer.RenderSource(src)
				}
			}
			renderer.RenderSummary(result)

			return nil
		},
	}

	cmd.Flags().BoolVar(&includeImpl, "implementation", false, "Also fetch the implementation behind proxies")
	cmd.Flags().StringVar(&file, "file", "", "Source file to print (path or path suffix)")
	cmd.Flags().StringVarP(&output, "output", "o", render.FormatText, "Output format (text, json, yaml)")
	cmd.Flags().BoolVar(&noSource, "no-source", false, "Only print metadata and the file list")

	return cmd
}

// pickSource resolves which source file of deployment to print. A nil file
// with a nil error means the assembled source was printed instead.
func pickSource(cmd *cobra.Command, app *app.App, deployment *models.DeploymentInfo, path string) (*models.SourceFile, error) {
	if path != "" {
		src := findSource(deployment, path)
		if src == nil {
			// With several contracts requested the file usually belongs to one of them
			err := fmt.Errorf("%w: source file %q in %s", domain.ErrNotFound, path, deployment.Address)
			fmt.Fprintln(cmd.ErrOrStderr(), render.FormatWarning(err.Error()))
			return nil, nil
		}
		return src, nil
	}

	src, err := app.Selector.SelectSource(cmd.Context(), deployment, fmt.Sprintf("Select a source file of %s", deployment.DisplayName()))
	if err == nil {
		return src, nil
	}
	if !app.Config.NonInteractive {
		return nil, err
	}

	render.NewContractRenderer(cmd.OutOrStdout(), !color.NoColor).RenderSource(&models.SourceFile{
		Path:    deployment.DisplayName() + " (all files)",
		Content: deployment.Code,
	})
	return nil, nil
}

// findSource matches path against the deployment's files, exact first, then
// by suffix
func findSource(deployment *models.DeploymentInfo, path string) *models.SourceFile {
	for i := range deployment.Sources {
		if deployment.Sources[i].Path == path {
			return &deployment.Sources[i]
		}
	}
	for i := range deployment.Sources {
		if strings.HasSuffix(deployment.Sources[i].Path, "/"+path) {
			return &deployment.Sources[i]
		}
	}
	return nil
}
