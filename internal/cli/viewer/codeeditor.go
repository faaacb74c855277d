package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/trebuchet-org/treb-viewer/internal/domain/models"
)

// CodeEditor is a read-only view of a deployment's source
type CodeEditor struct {
	viewport   viewport.Model
	style      string
	deployment *models.DeploymentInfo
	lines      []string

	peekLine int
	peekCol  int
	hasPeek  bool

	width   int
	height  int
	focused bool
}

// NewCodeEditor creates an empty editor using the given chroma style
func NewCodeEditor(style string) *CodeEditor {
	vp := viewport.New(0, 0)
	return &CodeEditor{viewport: vp, style: style}
}

// SetDeployment shows d. The source is highlighted once per deployment.
func (e *CodeEditor) SetDeployment(d *models.DeploymentInfo) {
	if d == e.deployment {
		return
	}
	e.deployment = d
	e.lines = nil
	if d != nil {
		e.lines = Highlight(d.Code, e.style)
	}
	e.render()
	e.viewport.GotoTop()
	e.reveal()
}

// SetPeek moves the peek marker to line (1-indexed) and column (1-indexed)
// and scrolls it into view
func (e *CodeEditor) SetPeek(line, column int, ok bool) {
	if ok == e.hasPeek && line == e.peekLine && column == e.peekCol {
		return
	}
	e.peekLine, e.peekCol, e.hasPeek = line, column, ok
	e.render()
	e.reveal()
}

// Peek returns the current peek position
func (e *CodeEditor) Peek() (line, column int, ok bool) {
	return e.peekLine, e.peekCol, e.hasPeek
}

// Indicator returns the cursor position label
func (e *CodeEditor) Indicator() string {
	if !e.hasPeek {
		return ""
	}
	return fmt.Sprintf("Ln %d, Col %d", e.peekLine, e.peekCol)
}

// YOffset returns the first visible line index
func (e *CodeEditor) YOffset() int {
	return e.viewport.YOffset
}

func (e *CodeEditor) SetSize(width, height int) {
	e.width = width
	e.height = height
	e.viewport.Width = width
	// header and indicator lines
	e.viewport.Height = max(height-2, 1)
	e.render()
	e.reveal()
}

func (e *CodeEditor) Focus() {
	e.focused = true
}

func (e *CodeEditor) Blur() {
	e.focused = false
}

// Update scrolls the viewport while the editor has focus
func (e *CodeEditor) Update(msg tea.Msg) tea.Cmd {
	if !e.focused {
		return nil
	}
	var cmd tea.Cmd
	e.viewport, cmd = e.viewport.Update(msg)
	return cmd
}

// reveal scrolls so the peek line sits in the upper third of the view
func (e *CodeEditor) reveal() {
	if !e.hasPeek || e.deployment == nil {
		return
	}
	target := e.peekLine - 1 - e.viewport.Height/3
	e.viewport.SetYOffset(max(target, 0))
}

func (e *CodeEditor) render() {
	if e.deployment == nil {
		e.viewport.SetContent(mutedStyle.Render("select a contract in the tree"))
		return
	}

	gutterWidth := len(fmt.Sprint(len(e.lines)))
	var b strings.Builder
	for i, line := range e.lines {
		n := i + 1
		marker := " "
		number := gutterStyle.Render(fmt.Sprintf("%*d", gutterWidth, n))
		if e.hasPeek && n == e.peekLine {
			marker = peekStyle.Render("▶")
			number = peekStyle.Render(fmt.Sprintf("%*d", gutterWidth, n))
		}

		text := marker + number + gutterStyle.Render(" │ ") + line
		if e.width > 0 {
			text = ansi.Truncate(text, e.width, "")
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(text)
	}
	e.viewport.SetContent(b.String())
}

// View renders the editor with its header and position indicator
func (e *CodeEditor) View() string {
	header := mutedStyle.Render("no contract selected")
	if d := e.deployment; d != nil {
		header = titleStyle.Render(d.DisplayName()) + " " + mutedStyle.Render(d.Address)
		if d.Provider != "" {
			header += mutedStyle.Render(" · " + string(d.Provider))
		}
	}

	indicator := e.Indicator()
	if e.deployment != nil && len(e.lines) > 0 {
		percent := fmt.Sprintf("%3.f%%", e.viewport.ScrollPercent()*100)
		if indicator != "" {
			indicator += "  "
		}
		indicator += percent
	}

	return ansi.Truncate(header, max(e.width, 1), "…") + "\n" +
		e.viewport.View() + "\n" +
		mutedStyle.Render(indicator)
}
