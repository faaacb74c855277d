package viewer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// AddressBar is the contract address input
type AddressBar struct {
	input textinput.Model
}

// NewAddressBar creates a focused address input
func NewAddressBar() *AddressBar {
	ti := textinput.New()
	ti.Prompt = "address › "
	ti.Placeholder = "0x… contract address"
	ti.CharLimit = 64
	ti.Focus()
	return &AddressBar{input: ti}
}

// Update forwards msg to the input. edited reports whether the value changed,
// in which case value is the trimmed new content.
func (a *AddressBar) Update(msg tea.Msg) (cmd tea.Cmd, value string, edited bool) {
	before := a.input.Value()
	a.input, cmd = a.input.Update(msg)
	after := a.input.Value()
	return cmd, strings.TrimSpace(after), after != before
}

func (a *AddressBar) Focus() tea.Cmd {
	return a.input.Focus()
}

func (a *AddressBar) Blur() {
	a.input.Blur()
}

func (a *AddressBar) Focused() bool {
	return a.input.Focused()
}

func (a *AddressBar) SetWidth(width int) {
	a.input.Width = max(width-len([]rune(a.input.Prompt))-1, 1)
}

func (a *AddressBar) Value() string {
	return a.input.Value()
}

func (a *AddressBar) View() string {
	return a.input.View()
}
