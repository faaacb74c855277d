package viewer

import "github.com/charmbracelet/lipgloss"

var (
	accentColor  = lipgloss.Color("39")
	mutedColor   = lipgloss.Color("241")
	warnColor    = lipgloss.Color("214")
	errorColor   = lipgloss.Color("203")
	successColor = lipgloss.Color("78")
)

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor)

	focusedPaneStyle = paneStyle.BorderForeground(accentColor)
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	matchStyle   = lipgloss.NewStyle().Foreground(warnColor).Bold(true)
	gutterStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	peekStyle    = lipgloss.NewStyle().Foreground(warnColor).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor)
	successStyle = lipgloss.NewStyle().Foreground(successColor)
	routeStyle   = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
	spinnerStyle = lipgloss.NewStyle().Foreground(accentColor)
)

// kindStyles colors tree labels by artifact kind
var kindStyles = map[string]lipgloss.Style{
	"contract":  lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
	"abstract":  lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
	"interface": lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
	"library":   lipgloss.NewStyle().Foreground(lipgloss.Color("177")),
	"event":     lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
	"error":     lipgloss.NewStyle().Foreground(errorColor),
}
