package viewer

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/treb-viewer/internal/domain"
	"github.com/trebuchet-org/treb-viewer/internal/domain/models"
)

func labels(nodes []*domain.TreeNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Label
	}
	return out
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTreeView_Expansion(t *testing.T) {
	tree := NewTreeView(DefaultKeyMap())
	tree.SetSize(60, 20)
	tree.Focus()
	tree.SetDeployments([]*models.DeploymentInfo{counterDeployment(addrA)})

	assert.Equal(t, []string{
		"Counter (" + addrA + ")",
		"src/Counter.sol",
		"contract Counter",
		"ABI",
	}, labels(tree.Rows()))

	// expand the contract
	tree.Update(keyPress("down"))
	tree.Update(keyPress("down"))
	require.Equal(t, "contract Counter", tree.Selected().Label)
	tree.Update(keyPress("right"))
	assert.Equal(t, []string{
		"Counter (" + addrA + ")",
		"src/Counter.sol",
		"contract Counter",
		"function increment",
		"ABI",
	}, labels(tree.Rows()))

	// expansion survives a rebuild
	tree.SetDeployments([]*models.DeploymentInfo{counterDeployment(addrA), counterDeployment(addrB)})
	assert.Len(t, tree.Rows(), 5+4)
	assert.Equal(t, "contract Counter", tree.Selected().Label)

	// collapse the first deployment
	tree.cursor = 0
	tree.Update(keyPress(" "))
	assert.Equal(t, "Counter ("+addrA+")", tree.Rows()[0].Label)
	assert.Equal(t, "Counter ("+addrB+")", tree.Rows()[1].Label)
}

func TestTreeView_SelectEmitsNode(t *testing.T) {
	tree := NewTreeView(DefaultKeyMap())
	tree.SetSize(60, 20)
	tree.SetDeployments([]*models.DeploymentInfo{counterDeployment(addrA)})
	tree.cursor = 2

	cmd := tree.Update(keyPress("enter"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(nodeSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, "contract Counter", msg.node.Label)
	assert.Equal(t, addrA, msg.node.Deployment.Address)
}

func TestTreeView_Filter(t *testing.T) {
	tree := NewTreeView(DefaultKeyMap())
	tree.SetSize(60, 20)
	tree.SetDeployments([]*models.DeploymentInfo{counterDeployment(addrA)})

	tree.Update(keyPress("/"))
	require.True(t, tree.Filtering())
	for _, r := range "increment" {
		tree.Update(keyPress(string(r)))
	}

	assert.ElementsMatch(t, []string{"function increment", "abi-function increment()"}, labels(tree.Rows()))
	assert.Contains(t, tree.View(), "increment")

	// enter leaves the filter applied
	tree.Update(keyPress("enter"))
	assert.False(t, tree.Filtering())
	assert.Len(t, tree.Rows(), 2)

	// esc clears it
	tree.Update(keyPress("esc"))
	assert.Len(t, tree.Rows(), 4)
}

func TestTreeView_FilterWithoutMatches(t *testing.T) {
	tree := NewTreeView(DefaultKeyMap())
	tree.SetSize(60, 20)
	tree.SetDeployments([]*models.DeploymentInfo{counterDeployment(addrA)})

	tree.SetFilter("zzzz")
	assert.Empty(t, tree.Rows())
	assert.Nil(t, tree.Selected())
	assert.Contains(t, tree.View(), "no matches")
}

func TestTreeView_ProxyNode(t *testing.T) {
	d := counterDeployment(addrA)
	d.Type = models.ProxyDeployment
	d.Implementation = addrB

	tree := NewTreeView(DefaultKeyMap())
	tree.SetSize(60, 20)
	tree.SetDeployments([]*models.DeploymentInfo{d})

	rows := tree.Rows()
	last := rows[len(rows)-1]
	assert.Equal(t, domain.NodeImplementation, last.Kind)
	assert.Equal(t, addrB, last.Implementation)
}

func TestTreeView_Scrolling(t *testing.T) {
	tree := NewTreeView(DefaultKeyMap())
	tree.SetSize(60, 3)
	tree.SetDeployments([]*models.DeploymentInfo{counterDeployment(addrA), counterDeployment(addrB)})

	for i := 0; i < 6; i++ {
		tree.Update(keyPress("down"))
	}
	assert.Equal(t, 6, tree.cursor)
	assert.Equal(t, 4, tree.offset)

	tree.Update(keyPress("down"))
	tree.Update(keyPress("down"))
	assert.Equal(t, 7, tree.cursor, "cursor stops at the last row")
}
