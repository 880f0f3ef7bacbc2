package srcexport

import (
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/arthur-debert/srcexport/pkg/ui"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// formatBold renders s in bold when stdout is a terminal
func formatBold(s string) string {
	if !isTerminal(os.Stdout) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting adds the formatting functions used by the usage template
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"boldUpper": formatBoldUpper,
	})
}

// errorFormat picks the error rendering for w
func errorFormat(w io.Writer) ui.Format {
	if f, ok := w.(*os.File); ok {
		return ui.DetectFormat(f)
	}
	return ui.FormatText
}
