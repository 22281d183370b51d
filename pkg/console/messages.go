// Package console provides styled terminal output for the cloudlint CLI.
package console

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javascriptjoey/cloudlint/pkg/tty"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	// Styling is skipped entirely when stdout is not a terminal so that
	// piped output stays plain.
	styled = tty.IsStdoutTerminal()
)

func render(style lipgloss.Style, prefix, message string) string {
	if !styled {
		return prefix + message
	}
	return style.Render(prefix) + message
}

// FormatErrorMessage formats an error message with a styled cross prefix.
func FormatErrorMessage(message string) string {
	return render(errorStyle, "✗ ", message)
}

// FormatWarningMessage formats a warning message with a styled prefix.
func FormatWarningMessage(message string) string {
	return render(warningStyle, "! ", message)
}

// FormatSuccessMessage formats a success message with a styled check prefix.
func FormatSuccessMessage(message string) string {
	return render(successStyle, "✓ ", message)
}

// FormatInfoMessage formats an informational message with a styled prefix.
func FormatInfoMessage(message string) string {
	return render(infoStyle, "ℹ ", message)
}
