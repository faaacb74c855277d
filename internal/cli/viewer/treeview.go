package viewer

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/treb-viewer/internal/domain"
	"github.com/trebuchet-org/treb-viewer/internal/domain/models"
)

// nodeSelectedMsg is sent when a tree node is opened
type nodeSelectedMsg struct {
	node *domain.TreeNode
}

// row is a visible line of the tree
type row struct {
	node    *domain.TreeNode
	indent  int
	matches []int
}

// TreeView shows loaded deployments with their outlines
type TreeView struct {
	keys     KeyMap
	roots    []*domain.TreeNode
	expanded map[string]bool
	rows     []row

	cursor int
	offset int

	filter    textinput.Model
	filtering bool

	width   int
	height  int
	focused bool
}

// NewTreeView creates an empty tree view
func NewTreeView(keys KeyMap) *TreeView {
	fi := textinput.New()
	fi.Prompt = "/"
	fi.Placeholder = "filter"

	return &TreeView{
		keys:     keys,
		expanded: make(map[string]bool),
		filter:   fi,
	}
}

// SetDeployments rebuilds the tree, keeping expansion state and the cursor
// node. Deployments and source files start expanded.
func (t *TreeView) SetDeployments(deployments []*models.DeploymentInfo) {
	var current string
	if n := t.Selected(); n != nil {
		current = n.ID
	}

	t.roots = domain.BuildTree(deployments)
	domain.Walk(t.roots, func(n *domain.TreeNode) bool {
		if _, seen := t.expanded[n.ID]; !seen {
			t.expanded[n.ID] = n.Kind == domain.NodeDeployment ||
				(n.Artifact != nil && n.Artifact.Kind == models.ArtifactFile)
		}
		return true
	})

	t.refresh()

	for i, r := range t.rows {
		if r.node.ID == current {
			t.cursor = i
			break
		}
	}
	t.clampCursor()
}

// Rows returns the visible nodes in display order
func (t *TreeView) Rows() []*domain.TreeNode {
	out := make([]*domain.TreeNode, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.node
	}
	return out
}

// Selected returns the node under the cursor
func (t *TreeView) Selected() *domain.TreeNode {
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return nil
	}
	return t.rows[t.cursor].node
}

// Filtering reports whether the filter input has focus
func (t *TreeView) Filtering() bool {
	return t.filtering
}

// SetFilter applies query as the tree filter
func (t *TreeView) SetFilter(query string) {
	t.filter.SetValue(query)
	t.refresh()
	t.cursor = 0
	t.offset = 0
}

func (t *TreeView) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.filter.Width = max(width-3, 1)
	t.clampCursor()
}

func (t *TreeView) Focus() {
	t.focused = true
}

func (t *TreeView) Blur() {
	t.focused = false
	t.filtering = false
	t.filter.Blur()
}

// Update handles keys while the tree has focus
func (t *TreeView) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if t.filtering {
		switch {
		case key.Matches(keyMsg, t.keys.Escape):
			t.filtering = false
			t.filter.Blur()
			t.SetFilter("")
			return nil
		case keyMsg.Type == tea.KeyEnter:
			t.filtering = false
			t.filter.Blur()
			return nil
		}
		var cmd tea.Cmd
		before := t.filter.Value()
		t.filter, cmd = t.filter.Update(keyMsg)
		if t.filter.Value() != before {
			t.SetFilter(t.filter.Value())
		}
		return cmd
	}

	switch {
	case key.Matches(keyMsg, t.keys.Up):
		t.move(-1)
	case key.Matches(keyMsg, t.keys.Down):
		t.move(1)
	case key.Matches(keyMsg, t.keys.Expand):
		t.setExpanded(true)
	case key.Matches(keyMsg, t.keys.Collapse):
		t.setExpanded(false)
	case key.Matches(keyMsg, t.keys.Toggle):
		if n := t.Selected(); n != nil {
			t.setExpanded(!t.expanded[n.ID])
		}
	case key.Matches(keyMsg, t.keys.Filter):
		t.filtering = true
		return t.filter.Focus()
	case key.Matches(keyMsg, t.keys.Escape):
		t.SetFilter("")
	case key.Matches(keyMsg, t.keys.Select):
		if n := t.Selected(); n != nil {
			return func() tea.Msg { return nodeSelectedMsg{node: n} }
		}
	}
	return nil
}

func (t *TreeView) move(delta int) {
	t.cursor += delta
	t.clampCursor()
}

func (t *TreeView) setExpanded(open bool) {
	n := t.Selected()
	if n == nil || len(n.Children) == 0 || t.query() != "" {
		return
	}
	t.expanded[n.ID] = open
	t.refresh()
}

func (t *TreeView) clampCursor() {
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}

	visible := t.visibleRows()
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if visible > 0 && t.cursor >= t.offset+visible {
		t.offset = t.cursor - visible + 1
	}
}

func (t *TreeView) visibleRows() int {
	h := t.height
	if t.filtering || t.query() != "" {
		h--
	}
	return max(h, 0)
}

func (t *TreeView) query() string {
	return strings.TrimSpace(t.filter.Value())
}

// refresh recomputes the visible rows. Without a filter the rows follow the
// expansion state; with one they are every matching node, best match first.
func (t *TreeView) refresh() {
	t.rows = t.rows[:0]

	q := t.query()
	if q == "" {
		var walk func(nodes []*domain.TreeNode, indent int)
		walk = func(nodes []*domain.TreeNode, indent int) {
			for _, n := range nodes {
				t.rows = append(t.rows, row{node: n, indent: indent})
				if t.expanded[n.ID] {
					walk(n.Children, indent+1)
				}
			}
		}
		walk(t.roots, 0)
		return
	}

	var all nodeSource
	domain.Walk(t.roots, func(n *domain.TreeNode) bool {
		all = append(all, n)
		return true
	})
	for _, m := range fuzzy.FindFrom(q, all) {
		t.rows = append(t.rows, row{node: all[m.Index], matches: m.MatchedIndexes})
	}
}

// nodeSource adapts tree nodes for fuzzy matching on their labels
type nodeSource []*domain.TreeNode

func (s nodeSource) String(i int) string { return s[i].Label }
func (s nodeSource) Len() int            { return len(s) }

// View renders the tree
func (t *TreeView) View() string {
	var b strings.Builder

	if t.filtering || t.query() != "" {
		b.WriteString(t.filter.View())
		b.WriteString("\n")
	}

	if len(t.rows) == 0 {
		if t.query() != "" {
			b.WriteString(mutedStyle.Render("no matches"))
		} else {
			b.WriteString(mutedStyle.Render("no contracts loaded"))
		}
		return b.String()
	}

	end := min(t.offset+t.visibleRows(), len(t.rows))
	for i := t.offset; i < end; i++ {
		if i > t.offset {
			b.WriteString("\n")
		}
		b.WriteString(t.renderRow(t.rows[i], i == t.cursor))
	}
	return b.String()
}

func (t *TreeView) renderRow(r row, selected bool) string {
	n := r.node

	marker := "  "
	if len(n.Children) > 0 && t.query() == "" {
		if t.expanded[n.ID] {
			marker = "▾ "
		} else {
			marker = "▸ "
		}
	}

	label := n.Label
	if len(r.matches) > 0 {
		label = highlightMatches(label, r.matches)
	} else if n.Kind == domain.NodeDeployment {
		label = titleStyle.Render(label)
	} else if n.Kind == domain.NodeImplementation || n.Kind == domain.NodeGroup {
		label = mutedStyle.Render(label)
	} else if n.Artifact != nil {
		if style, ok := kindStyles[string(n.Artifact.Kind)]; ok {
			label = style.Render(label)
		}
	}

	line := strings.Repeat("  ", r.indent) + marker + label
	if t.width > 0 {
		line = ansi.Truncate(line, t.width, "…")
	}
	if selected && t.focused {
		return cursorStyle.Render(ansi.Strip(line))
	}
	return line
}

// highlightMatches styles the matched character positions of s
func highlightMatches(s string, positions []int) string {
	matched := make(map[int]bool, len(positions))
	for _, p := range positions {
		matched[p] = true
	}

	var b strings.Builder
	for i, r := range s {
		if matched[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
