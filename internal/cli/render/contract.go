package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/trebuchet-org/treb-viewer/internal/domain/models"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var (
	headerStyle  = color.New(color.FgCyan, color.Bold)
	nameStyle    = color.New(color.FgYellow)
	proxyStyle   = color.New(color.FgMagenta)
	fileStyle    = color.New(color.Faint)
	sectionStyle = color.New(color.Bold, color.FgHiWhite)
)

// Output formats accepted by ContractRenderer
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ContractRenderer renders fetched contracts
type ContractRenderer struct {
	out   io.Writer
	color bool
}

// NewContractRenderer creates a new contract renderer
func NewContractRenderer(out io.Writer, color bool) *ContractRenderer {
	return &ContractRenderer{
		out:   out,
		color: color,
	}
}

// RenderResult renders every loaded deployment in format, followed by the
// addresses that failed to load
func (r *ContractRenderer) RenderResult(result *usecase.FetchContractsResult, format string) error {
	switch format {
	case FormatJSON:
		return r.RenderJSON(result.Deployments)
	case FormatYAML:
		return r.RenderYAML(result.Deployments)
	case FormatText, "":
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}

	for i, deployment := range result.Deployments {
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		r.RenderContract(deployment)
	}
	r.RenderSummary(result)
	return nil
}

// RenderContract prints the metadata table and the source file list
func (r *ContractRenderer) RenderContract(d *models.DeploymentInfo) {
	r.style(headerStyle).Fprintf(r.out, "Contract: %s\n", d.DisplayName())
	fmt.Fprintln(r.out, strings.Repeat("=", 80))

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	labels := table.ColumnConfig{Number: 1, Align: text.AlignLeft}
	if r.color {
		labels.Colors = text.Colors{text.Bold}
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		labels,
		{Number: 2, Align: text.AlignLeft},
	})

	info := d.EtherscanInfo
	t.AppendRow(table.Row{"Name", r.style(nameStyle).Sprint(d.DisplayName())})
	t.AppendRow(table.Row{"Address", d.Address})
	if d.ChainID != 0 {
		t.AppendRow(table.Row{"Chain", d.ChainID})
	}
	t.AppendRow(table.Row{"Source", titleCase(string(d.Provider))})
	t.AppendRow(table.Row{"Type", titleCase(string(d.Type))})
	if d.IsProxy() {
		t.AppendRow(table.Row{"Implementation", r.style(proxyStyle).Sprint(d.Implementation)})
	}
	if d.Context != "" {
		t.AppendRow(table.Row{"Loaded From", d.Context})
	}
	if info.CompilerVersion != "" {
		t.AppendRow(table.Row{"Compiler", info.CompilerVersion})
	}
	if info.OptimizationUsed != "" {
		t.AppendRow(table.Row{"Optimizer", optimizerSummary(info)})
	}
	if info.EVMVersion != "" && !strings.EqualFold(info.EVMVersion, "default") {
		t.AppendRow(table.Row{"EVM Version", info.EVMVersion})
	}
	if info.LicenseType != "" {
		t.AppendRow(table.Row{"License", info.LicenseType})
	}
	t.Render()

	if len(d.Sources) == 0 {
		return
	}

	fmt.Fprintln(r.out)
	r.style(sectionStyle).Fprintf(r.out, "Source Files (%d):\n", len(d.Sources))
	for _, src := range d.Sources {
		lines := strings.Count(strings.TrimRight(src.Content, "\n"), "\n") + 1
		fmt.Fprintf(r.out, "  %s %s\n", src.Path, r.style(fileStyle).Sprintf("(%d lines)", lines))
	}
}

// RenderSource prints a single source file with a header
func (r *ContractRenderer) RenderSource(src *models.SourceFile) {
	fmt.Fprintln(r.out)
	r.style(sectionStyle).Fprintf(r.out, "// %s\n", src.Path)
	content := src.Content
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	fmt.Fprint(r.out, content)
}

// RenderSummary prints how many contracts loaded, then each address that
// failed, in address order
func (r *ContractRenderer) RenderSummary(result *usecase.FetchContractsResult) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Loaded %d contract(s)", len(result.Deployments))))

	keys := lo.Keys(result.Failures)
	sort.Strings(keys)
	for _, address := range keys {
		fmt.Fprintln(r.out, FormatError(fmt.Sprintf("%s: %v", address, result.Failures[address])))
	}
}

// RenderJSON writes the deployments as indented JSON
func (r *ContractRenderer) RenderJSON(deployments []*models.DeploymentInfo) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(deployments)
}

// RenderYAML writes the deployments as YAML
func (r *ContractRenderer) RenderYAML(deployments []*models.DeploymentInfo) error {
	encoder := yaml.NewEncoder(r.out)
	encoder.SetIndent(2)
	if err := encoder.Encode(deployments); err != nil {
		return err
	}
	return encoder.Close()
}

func (r *ContractRenderer) style(c *color.Color) *color.Color {
	if r.color {
		return c
	}
	plain := *c
	plain.DisableColor()
	return &plain
}

func optimizerSummary(info models.EtherscanInfo) string {
	if info.OptimizationUsed == "1" || strings.EqualFold(info.OptimizationUsed, "true") {
		if info.Runs != "" {
			return fmt.Sprintf("enabled (%s runs)", info.Runs)
		}
		return "enabled"
	}
	return "disabled"
}

func titleCase(s string) string {
	if s == "" {
		return "-"
	}
	return cases.Title(language.English).String(strings.ToLower(s))
}
