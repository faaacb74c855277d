package viewer

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/treb-viewer/internal/domain"
	"github.com/trebuchet-org/treb-viewer/internal/domain/config"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

func newTestShell(viewer *usecase.ContractViewer) *Shell {
	cfg := &config.RuntimeConfig{HighlightStyle: "monokai"}
	s := NewShell(context.Background(), viewer, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return s
}

func findNode(nodes []*domain.TreeNode, label string) *domain.TreeNode {
	var found *domain.TreeNode
	domain.Walk(nodes, func(n *domain.TreeNode) bool {
		if found == nil && n.Label == label {
			found = n
		}
		return found == nil
	})
	return found
}

func TestShell_AddressEditLoadsContract(t *testing.T) {
	viewer := newTestViewer("", nil)
	s := newTestShell(viewer)

	cmd := s.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(addrA)})
	require.NotNil(t, cmd)
	assert.Equal(t, addrA, s.address.Value())

	msg := s.loadAddress(addrA)()
	done, ok := msg.(loadDoneMsg)
	require.True(t, ok)
	assert.Equal(t, usecase.OutcomeLoaded, done.outcome)

	s.Update(done)
	require.NotEmpty(t, s.tree.Rows())
	assert.Equal(t, "Counter ("+addrA+")", s.tree.Rows()[0].Label)
	assert.Equal(t, "treb-viewer://contracts?address="+addrA, viewer.RouteURL())

	view := ansi.Strip(s.View())
	assert.Contains(t, view, domain.StatusLoaded)
	assert.Contains(t, view, "treb-viewer://contracts?address="+addrA)
}

func TestShell_InvalidAddressStatus(t *testing.T) {
	viewer := newTestViewer("", nil)
	s := newTestShell(viewer)

	s.Update(s.loadAddress("0x12")())
	assert.Equal(t, domain.InvalidAddressStatus("0x12"), viewer.Status())
	assert.Contains(t, ansi.Strip(s.View()), "invalid address format: 0x12")
}

func TestShell_QuitKeys(t *testing.T) {
	s := newTestShell(newTestViewer("", nil))

	// q types into the address bar
	cmd := s.handleKey(keyPress("q"))
	require.NotNil(t, cmd)
	_, quit := cmd().(tea.QuitMsg)
	assert.False(t, quit)

	s.setFocus(focusTree)
	cmd = s.handleKey(keyPress("q"))
	require.NotNil(t, cmd)
	_, quit = cmd().(tea.QuitMsg)
	assert.True(t, quit)

	cmd = s.handleKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	_, quit = cmd().(tea.QuitMsg)
	assert.True(t, quit)
}

func TestShell_FocusAndResize(t *testing.T) {
	s := newTestShell(newTestViewer("", nil))
	assert.Equal(t, focusAddress, s.focus)

	s.handleKey(keyPress("tab"))
	assert.Equal(t, focusTree, s.focus)
	s.handleKey(keyPress("tab"))
	assert.Equal(t, focusEditor, s.focus)
	s.handleKey(keyPress("tab"))
	assert.Equal(t, focusAddress, s.focus)

	assert.Equal(t, 48, s.TreeWidth())

	s.setFocus(focusTree)
	s.handleKey(keyPress("["))
	assert.Equal(t, 35, s.treePercent)
	s.handleKey(keyPress("]"))
	s.handleKey(keyPress("]"))
	assert.Equal(t, 45, s.treePercent)

	s.handleKey(tea.KeyMsg{Type: tea.KeyCtrlLeft})
	assert.Equal(t, 40, s.treePercent)

	for i := 0; i < 30; i++ {
		s.resize(splitStep)
	}
	assert.Equal(t, maxTreePercent, s.treePercent)
}

func TestShell_SelectMovesCodePeek(t *testing.T) {
	viewer := newTestViewer("", nil)
	s := newTestShell(viewer)
	s.Update(s.loadAddress(addrA)())

	node := findNode(s.tree.roots, "function increment")
	require.NotNil(t, node)

	s.Update(nodeSelectedMsg{node: node})

	line, col, ok := s.editor.Peek()
	require.True(t, ok)
	assert.Equal(t, 5, line)
	assert.Equal(t, 5, col)
	assert.Equal(t, addrA, viewer.Selected().Address)
	assert.Contains(t, ansi.Strip(s.View()), "Ln 5, Col 5")
}

func TestShell_ImplementationNodeLoadsImplementation(t *testing.T) {
	viewer := newTestViewer("", map[string]string{addrA: addrB})
	s := newTestShell(viewer)
	s.Update(s.loadAddress(addrA)())

	node := findNode(s.tree.roots, "implementation "+addrB)
	require.NotNil(t, node)

	_, cmd := s.Update(nodeSelectedMsg{node: node})
	require.NotNil(t, cmd)
	s.Update(cmd())

	impl := findNode(s.tree.roots, "Counter ("+addrB+")")
	require.NotNil(t, impl)
	assert.Equal(t, addrA, impl.Deployment.Context)
	assert.Equal(t, "treb-viewer://contracts?address="+addrA+","+addrB, viewer.RouteURL())
}

func TestShell_MountStreamsRouteLoads(t *testing.T) {
	viewer := newTestViewer("treb-viewer://contracts?address="+addrA+","+addrB, nil)
	s := newTestShell(viewer)

	cmd := s.mount()
	require.NotNil(t, cmd)
	assert.True(t, s.mounting)

	loads := 0
	for cmd != nil {
		msg := cmd()
		if _, ok := msg.(mountLoadMsg); ok {
			loads++
		}
		_, cmd = s.Update(msg)
	}

	assert.Equal(t, 2, loads)
	assert.False(t, s.mounting)
	assert.Len(t, viewer.Deployments(), 2)
	assert.Equal(t, "treb-viewer://contracts?address="+addrA+","+addrB, viewer.RouteURL())
}

func TestShell_MountWithoutRoute(t *testing.T) {
	s := newTestShell(newTestViewer("", nil))
	assert.Nil(t, s.mount())
	assert.False(t, s.mounting)
}
