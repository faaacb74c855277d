package viewer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/trebuchet-org/treb-viewer/internal/domain"
	"github.com/trebuchet-org/treb-viewer/internal/domain/config"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

const (
	defaultTreePercent = 40
	minTreePercent     = 15
	maxTreePercent     = 85
	splitStep          = 5
)

type focusArea int

const (
	focusAddress focusArea = iota
	focusTree
	focusEditor
	focusCount
)

// loadDoneMsg reports a load started from the shell
type loadDoneMsg struct {
	address string
	outcome usecase.LoadOutcome
}

// mountLoadMsg reports one route address loaded while mounting
type mountLoadMsg struct {
	address string
	outcome usecase.LoadOutcome
}

// mountDoneMsg is sent once every route address has been attempted
type mountDoneMsg struct{}

// Shell lays out the address bar, the contract tree and the code editor
type Shell struct {
	ctx    context.Context
	viewer *usecase.ContractViewer
	log    *slog.Logger
	keys   KeyMap

	address *AddressBar
	tree    *TreeView
	editor  *CodeEditor
	spinner spinner.Model
	help    help.Model

	focus       focusArea
	treePercent int
	width       int
	height      int

	mountEvents chan mountLoadMsg
	mounting    bool
}

// NewShell creates the viewer shell over viewer
func NewShell(ctx context.Context, viewer *usecase.ContractViewer, cfg *config.RuntimeConfig, log *slog.Logger) *Shell {
	keys := DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return &Shell{
		ctx:         ctx,
		viewer:      viewer,
		log:         log,
		keys:        keys,
		address:     NewAddressBar(),
		tree:        NewTreeView(keys),
		editor:      NewCodeEditor(cfg.HighlightStyle),
		spinner:     sp,
		help:        help.New(),
		focus:       focusAddress,
		treePercent: defaultTreePercent,
	}
}

// Init starts loading the route addresses
func (s *Shell) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, s.spinner.Tick, s.mount())
}

// mount loads the route addresses in the background, streaming each result
// back to the update loop
func (s *Shell) mount() tea.Cmd {
	if len(s.viewer.RouteAddresses()) == 0 {
		return nil
	}

	s.mounting = true
	s.mountEvents = make(chan mountLoadMsg)
	go func() {
		defer close(s.mountEvents)
		s.viewer.Mount(s.ctx, func(address string, outcome usecase.LoadOutcome) {
			select {
			case s.mountEvents <- mountLoadMsg{address: address, outcome: outcome}:
			case <-s.ctx.Done():
			}
		})
	}()
	return s.waitForMount()
}

func (s *Shell) waitForMount() tea.Cmd {
	ch := s.mountEvents
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return mountDoneMsg{}
		}
		return ev
	}
}

func (s *Shell) loadAddress(value string) tea.Cmd {
	return func() tea.Msg {
		outcome := s.viewer.TryLoadAddress(s.ctx, value, true)
		return loadDoneMsg{address: value, outcome: outcome}
	}
}

// Update handles messages
func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		s.layout()
		return s, nil

	case tea.KeyMsg:
		return s, s.handleKey(msg)

	case loadDoneMsg:
		s.log.Debug("load finished", "address", msg.address, "outcome", msg.outcome)
		s.refresh()
		return s, nil

	case mountLoadMsg:
		s.log.Debug("route address loaded", "address", msg.address, "outcome", msg.outcome)
		s.refresh()
		return s, s.waitForMount()

	case mountDoneMsg:
		s.mounting = false
		s.refresh()
		return s, nil

	case nodeSelectedMsg:
		return s, s.open(msg.node)

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}

	// cursor blink and other input housekeeping
	if s.focus == focusAddress {
		cmd, _, _ := s.address.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Shell) handleKey(msg tea.KeyMsg) tea.Cmd {
	typing := s.focus == focusAddress || s.tree.Filtering()

	switch {
	case msg.Type == tea.KeyCtrlC:
		return tea.Quit
	case !typing && key.Matches(msg, s.keys.Quit):
		return tea.Quit
	case key.Matches(msg, s.keys.FocusNext) && !s.tree.Filtering():
		return s.setFocus((s.focus + 1) % focusCount)
	case key.Matches(msg, s.keys.FocusPrev) && !s.tree.Filtering():
		return s.setFocus((s.focus + focusCount - 1) % focusCount)
	case !typing && key.Matches(msg, s.keys.NarrowTree),
		(msg.Type == tea.KeyCtrlLeft):
		s.resize(-splitStep)
		return nil
	case !typing && key.Matches(msg, s.keys.WidenTree),
		(msg.Type == tea.KeyCtrlRight):
		s.resize(splitStep)
		return nil
	case !typing && key.Matches(msg, s.keys.Help):
		s.help.ShowAll = !s.help.ShowAll
		s.layout()
		return nil
	}

	switch s.focus {
	case focusAddress:
		cmd, value, edited := s.address.Update(msg)
		if edited {
			return tea.Batch(cmd, s.loadAddress(value))
		}
		return cmd
	case focusTree:
		return s.tree.Update(msg)
	case focusEditor:
		return s.editor.Update(msg)
	}
	return nil
}

// open acts on a selected tree node. Implementation nodes load the
// implementation with the proxy as context; anything else is selected.
func (s *Shell) open(node *domain.TreeNode) tea.Cmd {
	if node == nil {
		return nil
	}
	if node.Kind == domain.NodeImplementation {
		proxy := node.Deployment
		return func() tea.Msg {
			outcome := s.viewer.LoadImplementation(s.ctx, proxy)
			return loadDoneMsg{address: node.Implementation, outcome: outcome}
		}
	}

	s.viewer.Select(node.Deployment, node.Artifact)
	s.refresh()
	return nil
}

func (s *Shell) setFocus(f focusArea) tea.Cmd {
	s.focus = f
	s.address.Blur()
	s.tree.Blur()
	s.editor.Blur()

	switch f {
	case focusAddress:
		return s.address.Focus()
	case focusTree:
		s.tree.Focus()
	case focusEditor:
		s.editor.Focus()
	}
	return nil
}

func (s *Shell) resize(delta int) {
	s.treePercent = min(max(s.treePercent+delta, minTreePercent), maxTreePercent)
	s.layout()
}

// refresh pulls deployments, selection and code-peek from the viewer
func (s *Shell) refresh() {
	s.tree.SetDeployments(s.viewer.Deployments())
	s.editor.SetDeployment(s.viewer.Selected())
	s.editor.SetPeek(s.viewer.CodePeek())
}

// TreeWidth returns the outer width of the tree pane
func (s *Shell) TreeWidth() int {
	return s.width * s.treePercent / 100
}

func (s *Shell) layout() {
	if s.width == 0 || s.height == 0 {
		return
	}

	s.help.Width = s.width
	footer := 1 + lipgloss.Height(s.help.View(s.keys))
	bodyHeight := max(s.height-3-footer, 3)

	treeWidth := s.TreeWidth()
	editorWidth := s.width - treeWidth

	s.address.SetWidth(s.width - 2)
	s.tree.SetSize(max(treeWidth-2, 1), bodyHeight-2)
	s.editor.SetSize(max(editorWidth-2, 1), bodyHeight-2)
}

func pane(content string, width, height int, focused bool) string {
	style := paneStyle
	if focused {
		style = focusedPaneStyle
	}
	return style.
		Width(max(width-2, 1)).
		Height(max(height-2, 1)).
		MaxHeight(height).
		Render(content)
}

// View renders the shell
func (s *Shell) View() string {
	if s.width == 0 {
		return "loading…"
	}

	footerHelp := s.help.View(s.keys)
	footerHeight := 1 + lipgloss.Height(footerHelp)
	bodyHeight := max(s.height-3-footerHeight, 3)
	treeWidth := s.TreeWidth()

	top := pane(s.address.View(), s.width, 3, s.focus == focusAddress)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		pane(s.tree.View(), treeWidth, bodyHeight, s.focus == focusTree),
		pane(s.editor.View(), s.width-treeWidth, bodyHeight, s.focus == focusEditor),
	)

	return lipgloss.JoinVertical(lipgloss.Left, top, body, s.statusLine(), footerHelp)
}

// statusLine shows the load spinner, the status and the route URL
func (s *Shell) statusLine() string {
	var parts []string
	if s.viewer.Pending() > 0 || s.mounting {
		parts = append(parts, s.spinner.View())
	}

	status := s.viewer.Status()
	switch {
	case status == domain.StatusLoaded:
		parts = append(parts, successStyle.Render(status))
	case strings.HasPrefix(status, "failed") || strings.HasPrefix(status, "invalid"):
		parts = append(parts, errorStyle.Render(strings.ReplaceAll(status, "\n", ": ")))
	case status != "":
		parts = append(parts, status)
	}

	parts = append(parts, routeStyle.Render(s.viewer.RouteURL()))
	return ansi.Truncate(strings.Join(parts, "  "), s.width, "…")
}

// Run starts the terminal UI and blocks until the user quits. It returns the
// final viewer URL.
func Run(ctx context.Context, viewer *usecase.ContractViewer, cfg *config.RuntimeConfig, log *slog.Logger) (string, error) {
	// in-flight loads stop with the program
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	shell := NewShell(ctx, viewer, cfg, log)
	p := tea.NewProgram(shell, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return viewer.RouteURL(), err
	}
	return viewer.RouteURL(), nil
}
