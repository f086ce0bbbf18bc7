// Package ui renders diffs and operation listings for the terminal.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/kvit-s/tracediff/internal/session"
)

// Color definitions for consistent output
var (
	// Green for added lines
	addColor = color.New(color.FgGreen)

	// Red for removed lines
	removeColor = color.New(color.FgRed)

	// Cyan for hunk markers
	hunkColor = color.New(color.FgCyan)

	// Faint for file headers
	headerColor = color.New(color.FgWhite, color.Faint)
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// WriteDiff writes unified-diff text to w, colorizing added/removed lines
// and hunk markers. With colors disabled (color.NoColor) the text passes
// through unchanged.
func WriteDiff(w io.Writer, diffText string) {
	if diffText == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimSuffix(diffText, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			headerColor.Fprintln(w, line)
		case strings.HasPrefix(line, "@@"):
			hunkColor.Fprintln(w, line)
		case strings.HasPrefix(line, "+"):
			addColor.Fprintln(w, line)
		case strings.HasPrefix(line, "-"):
			removeColor.Fprintln(w, line)
		default:
			fmt.Fprintln(w, line)
		}
	}
}

// WriteOperations writes a session's operation records as a table.
func WriteOperations(w io.Writer, sessionID string, records []session.OperationRecord) {
	fmt.Fprintln(w, headingStyle.Render("session "+sessionID))
	if len(records) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no operations recorded"))
		return
	}

	fmt.Fprintf(w, "%-26s  %-10s  %-8s  %s\n", "TIME", "TOOL", "CHANGE", "SUMMARY")
	fmt.Fprintln(w, dimStyle.Render(strings.Repeat("-", 72)))
	for _, rec := range records {
		fmt.Fprintf(w, "%-26s  %-10s  %-8s  %s\n",
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.Tool,
			rec.ChangeType,
			rec.Summary,
		)
	}
}

// WriteSessionList writes the available session ids, newest first.
func WriteSessionList(w io.Writer, ids []string) {
	if len(ids) == 0 {
		fmt.Fprintln(w, "No sessions found.")
		return
	}
	fmt.Fprintln(w, headingStyle.Render("sessions"))
	for _, id := range ids {
		fmt.Fprintln(w, " "+id)
	}
}
