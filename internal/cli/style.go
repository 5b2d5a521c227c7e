package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/agentx-labs/skillpack/internal/validate"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

func success(s string) string { return successStyle.Render(s) }
func failure(s string) string { return errorStyle.Render(s) }
func warning(s string) string { return warnStyle.Render(s) }
func dim(s string) string     { return dimStyle.Render(s) }

// printResult writes a validation result: a status line followed by any
// warnings. label prefixes the status line when non-empty.
func printResult(w io.Writer, label string, res validate.Result) {
	prefix := ""
	if label != "" {
		prefix = label + ": "
	}
	if res.OK {
		fmt.Fprintln(w, success("✓ ")+prefix+res.Message)
	} else {
		fmt.Fprintln(w, failure("✗ ")+prefix+res.Message)
	}
	for _, msg := range res.Warnings {
		fmt.Fprintln(w, warning("  ! ")+msg)
	}
}
