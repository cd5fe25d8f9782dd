package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Status style for the scan progress line
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#959595"))

	// Error style for fatal scan failures
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true)

	// Hint style for the key hints under transient screens
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)
