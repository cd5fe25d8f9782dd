package styles

import "github.com/charmbracelet/lipgloss"

// Theme bundles every style the interactive view draws with. Widgets
// take a Theme instead of reaching for package globals so that tests
// can render unstyled and users can recolor via the config file.
type Theme struct {
	Border    lipgloss.Style
	Title     lipgloss.Style
	Entry     lipgloss.Style
	Directory lipgloss.Style
	Selected  lipgloss.Style
	Footer    lipgloss.Style
}

// Default is the stock palette: plain entries, tinted directories, and
// selection and footer shown inverted on a light band.
func Default() Theme {
	return Theme{
		Border:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Title:     lipgloss.NewStyle().Bold(true),
		Entry:     lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Directory: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Selected:  lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("7")),
		Footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("7")),
	}
}

// StyleConfig is the user-editable description of one style. Empty
// fields keep the default.
type StyleConfig struct {
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
	Bold       bool   `yaml:"bold,omitempty"`
}

// ThemeConfig is the theme section of the config file.
type ThemeConfig struct {
	Border    StyleConfig `yaml:"border,omitempty"`
	Title     StyleConfig `yaml:"title,omitempty"`
	Entry     StyleConfig `yaml:"entry,omitempty"`
	Directory StyleConfig `yaml:"directory,omitempty"`
	Selected  StyleConfig `yaml:"selected,omitempty"`
	Footer    StyleConfig `yaml:"footer,omitempty"`
}

// Load starts from Default and applies the user's overrides.
func Load(tc ThemeConfig) Theme {
	t := Default()
	t.Border = apply(t.Border, tc.Border)
	t.Title = apply(t.Title, tc.Title)
	t.Entry = apply(t.Entry, tc.Entry)
	t.Directory = apply(t.Directory, tc.Directory)
	t.Selected = apply(t.Selected, tc.Selected)
	t.Footer = apply(t.Footer, tc.Footer)
	return t
}

func apply(base lipgloss.Style, sc StyleConfig) lipgloss.Style {
	if sc.Foreground != "" {
		base = base.Foreground(Color(sc.Foreground))
	}
	if sc.Background != "" {
		base = base.Background(Color(sc.Background))
	}
	if sc.Bold {
		base = base.Bold(true)
	}
	return base
}
