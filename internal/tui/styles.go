package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Error styling
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	// Warning styling
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	// Success styling
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	// Subtle text styling
	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// Success renders a "✓ msg" line.
func Success(msg string) string {
	return SuccessStyle.Render("✓") + " " + msg
}

// Warning renders a "! msg" line.
func Warning(msg string) string {
	return WarningStyle.Render("!") + " " + msg
}

// Error renders a "✗ msg" line.
func Error(msg string) string {
	return ErrorStyle.Render("✗") + " " + msg
}

// Detail renders an indented, dimmed sub-line.
func Detail(msg string) string {
	return "  " + SubtleStyle.Render(msg)
}
