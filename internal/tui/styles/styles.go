package styles

import "github.com/charmbracelet/lipgloss"

// ansiNames maps the plain color words accepted in config files to
// their ANSI palette slots.
var ansiNames = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
	"gray":    "8",
	"grey":    "8",
}

// Color resolves a user-supplied color value: a name like "cyan", an
// ANSI slot like "12", or a hex value like "#7B61FF". Empty input means
// no color at all.
func Color(s string) lipgloss.TerminalColor {
	if s == "" {
		return lipgloss.NoColor{}
	}
	if slot, ok := ansiNames[s]; ok {
		return lipgloss.Color(slot)
	}
	return lipgloss.Color(s)
}
