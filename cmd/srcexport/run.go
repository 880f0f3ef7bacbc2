package srcexport

import (
	"fmt"
	"io"

	"github.com/arthur-debert/srcexport/pkg/ui"
)

// IsUsageRequest reports whether args ask for the short usage text
func IsUsageRequest(args []string) bool {
	for _, a := range args {
		if a == "/?" || a == "-?" {
			return true
		}
	}
	return false
}

// Run executes the command line and returns the process exit code
func Run(args []string, stdout, stderr io.Writer) int {
	if IsUsageRequest(args) {
		_, _ = io.WriteString(stdout, MsgUsage)
		return 0
	}

	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, ui.RenderError(errorFormat(stderr), err))
		return 1
	}
	return 0
}
