// Package ui renders command results for the terminal or as plain text.
package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

var (
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Italic(true)
)

// Summary describes a finished export
type Summary struct {
	Source      string
	Destination string
	Directories int
	Files       int
}

// RenderSummary writes the summary of an export in the given format.
// FormatAuto must be resolved by the caller.
func RenderSummary(w io.Writer, format Format, s Summary) error {
	if format != FormatTerminal {
		_, err := fmt.Fprintf(w, "Exported %s to %s\nDirectories: %d\nFiles: %d\n",
			s.Source, s.Destination, s.Directories, s.Files)
		return err
	}

	table, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithData(pterm.TableData{
			{"Directories", "Files"},
			{strconv.Itoa(s.Directories), strconv.Itoa(s.Files)},
		}).
		Srender()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s %s %s %s\n%s\n",
		titleStyle.Render("Exported"), pathStyle.Render(s.Source),
		titleStyle.Render("to"), pathStyle.Render(s.Destination),
		table)
	return err
}

// RenderError formats an error message for stderr
func RenderError(format Format, err error) string {
	msg := fmt.Sprintf("Error: %v", err)
	if format != FormatTerminal {
		return msg
	}
	return errorStyle.Render(msg)
}
