// Package ui centralizes the styled console output used across commands.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	headingStyle = lipgloss.NewStyle().Bold(true)
	bannerStyle  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
)

// OK prints a created-item line.
func OK(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "  %s %s\n", okStyle.Render("[ OK ]"), fmt.Sprintf(format, args...))
}

// Skip prints an already-exists line.
func Skip(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "  %s %s\n", skipStyle.Render("[SKIP]"), fmt.Sprintf(format, args...))
}

// Warn prints a warning line.
func Warn(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "  %s %s\n", warnStyle.Render("[WARN]"), fmt.Sprintf(format, args...))
}

// Heading prints a bold section heading.
func Heading(w io.Writer, text string) {
	fmt.Fprintf(w, "%s\n", headingStyle.Render(text))
}

// Banner prints the closing success box.
func Banner(w io.Writer, text string) {
	fmt.Fprintf(w, "\n%s\n", bannerStyle.Render(text))
}
