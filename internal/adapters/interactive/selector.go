package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/treb-viewer/internal/domain/config"
	"github.com/trebuchet-org/treb-viewer/internal/domain/models"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectSource asks the user to pick one of the deployment's source files
func (s *SelectorAdapter) SelectSource(ctx context.Context, deployment *models.DeploymentInfo, prompt string) (*models.SourceFile, error) {
	if deployment == nil || len(deployment.Sources) == 0 {
		return nil, fmt.Errorf("no source files to select from")
	}

	// If only one file, return it directly
	if len(deployment.Sources) == 1 {
		return &deployment.Sources[0], nil
	}

	// In non-interactive mode, we can't select
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	options := FormatSourceOptions(deployment)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          FuzzySearcher(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return &deployment.Sources[index], nil
}

// FormatSourceOptions renders one line per source file, marking the file
// that declares the verified contract
func FormatSourceOptions(deployment *models.DeploymentInfo) []string {
	main := deployment.EtherscanInfo.ContractName
	options := make([]string, len(deployment.Sources))
	for i, src := range deployment.Sources {
		lines := strings.Count(strings.TrimRight(src.Content, "\n"), "\n") + 1
		option := fmt.Sprintf("%s %s", src.Path, color.New(color.Faint).Sprintf("(%d lines)", lines))
		if main != "" && declares(src, main) {
			option += " " + color.New(color.FgYellow).Sprint("[main]")
		}
		options[i] = option
	}
	return options
}

func declares(src models.SourceFile, contractName string) bool {
	for _, kw := range []string{"contract ", "library ", "interface "} {
		if strings.Contains(src.Content, kw+contractName+" ") || strings.Contains(src.Content, kw+contractName+"{") {
			return true
		}
	}
	return false
}

// FuzzySearcher creates a fuzzy search function for promptui
func FuzzySearcher(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		// First try simple substring match
		if strings.Contains(item, input) {
			return true
		}

		// Then try fuzzy match
		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.SourceSelector = (*SelectorAdapter)(nil)
