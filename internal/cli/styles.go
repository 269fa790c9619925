package cli

import "github.com/charmbracelet/lipgloss"

var (
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// typeColors are the conventional type badge colors.
var typeColors = map[string]lipgloss.Color{
	"normal":   "250",
	"fire":     "202",
	"water":    "33",
	"grass":    "34",
	"electric": "220",
	"ice":      "117",
	"fighting": "124",
	"poison":   "128",
	"ground":   "179",
	"flying":   "147",
	"psychic":  "205",
	"bug":      "106",
	"rock":     "137",
	"ghost":    "61",
	"dragon":   "57",
	"dark":     "238",
	"steel":    "247",
	"fairy":    "218",
}

func typeBadge(t string) string {
	color, ok := typeColors[t]
	if !ok {
		color = "244"
	}

	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(t)
}
