package srcexport

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Export a clean copy of a source tree"
	MsgDefaultsShort   = "Print the built-in settings"
	MsgInspectShort    = "Print excluded-project entries for project files"
	MsgVersionShort    = "Print version information"
	MsgManShort        = "Generate man pages into a directory"
	MsgCompletionShort = "Generate shell completion script"

	MsgInspectLong = "Inspect reads the ProjectGuid of each project file and prints an [[excluded_projects]] entry for it, ready to be pasted into a settings file."

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagOutput   = "Output format: auto, term or text"
	MsgFlagSettings = "Settings format: toml, yaml or xml"

	// Output
	MsgVersionFormat = "srcexport version %s\n  commit: %s\n  built:  %s\n"
	MsgManWritten    = "Man pages written to %s\n"

	// Error messages
	MsgErrArgs         = "expected <source> <destination> [settings], got %d argument(s)"
	MsgErrLoadSettings = "failed to load settings: %w"
	MsgErrExport       = "export failed: %w"
	MsgErrInspect      = "failed to inspect %s: %w"
	MsgErrFormat       = "invalid format: %w"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/usage.txt
	msgUsageRaw string
	MsgUsage    = msgUsageRaw

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
