package srcexport

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/srcexport/internal/version"
	"github.com/arthur-debert/srcexport/pkg/config"
	"github.com/arthur-debert/srcexport/pkg/export"
	"github.com/arthur-debert/srcexport/pkg/filesystem"
	"github.com/arthur-debert/srcexport/pkg/logging"
	"github.com/arthur-debert/srcexport/pkg/ui"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity int
		output    string
	)

	rootCmd := &cobra.Command{
		Use:     "srcexport <source> <destination> [settings]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    exportArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			format, err := ui.ParseFormat(output)
			if err != nil {
				return fmt.Errorf(MsgErrFormat, err)
			}
			settingsPath := ""
			if len(args) > 2 {
				settingsPath = filesystem.ExpandPath(args[2])
			}
			return runExport(cmd.OutOrStdout(), format,
				filesystem.ExpandPath(args[0]), filesystem.ExpandPath(args[1]), settingsPath)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.Flags().StringVarP(&output, "output", "o", "auto", MsgFlagOutput)

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newDefaultsCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newManCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// exportArgs accepts no argument (help) or two to three positional arguments
func exportArgs(cmd *cobra.Command, args []string) error {
	if n := len(args); n != 0 && (n < 2 || n > 3) {
		return fmt.Errorf(MsgErrArgs, n)
	}
	return nil
}

func runExport(w io.Writer, format ui.Format, source, destination, settingsPath string) error {
	settings, err := config.Load(settingsPath)
	if err != nil {
		return fmt.Errorf(MsgErrLoadSettings, err)
	}

	exporter, err := export.New(source, settings, export.Options{
		FS:     filesystem.NewOS(),
		Events: logging.NewEvents(),
	})
	if err != nil {
		return fmt.Errorf(MsgErrExport, err)
	}

	result, err := exporter.Export(destination)
	if err != nil {
		return fmt.Errorf(MsgErrExport, err)
	}

	return ui.RenderSummary(w, format.Resolve(os.Stdout), ui.Summary{
		Source:      exporter.SourceRoot(),
		Destination: destination,
		Directories: result.Directories,
		Files:       result.Files,
	})
}

func newDefaultsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: MsgDefaultsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == string(config.FormatTOML) {
				// the embedded document keeps its comments
				_, err := io.WriteString(cmd.OutOrStdout(), config.DefaultContent())
				return err
			}

			settings, err := config.Default()
			if err != nil {
				return err
			}
			data, err := config.Marshal(settings, config.Format(format))
			if err != nil {
				return fmt.Errorf(MsgErrFormat, err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(config.FormatTOML), MsgFlagSettings)
	return cmd
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <project files...>",
		Short: MsgInspectShort,
		Long:  MsgInspectLong,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := filesystem.NewOS()
			entries := struct {
				ExcludedProjects []config.Project `toml:"excluded_projects"`
			}{}
			for _, path := range args {
				project, err := config.InspectProject(fs, path)
				if err != nil {
					return fmt.Errorf(MsgErrInspect, path, err)
				}
				entries.ExcludedProjects = append(entries.ExcludedProjects, project)
			}

			data, err := toml.Marshal(entries)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "man <directory>",
		Short:  MsgManShort,
		Args:   cobra.ExactArgs(1),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(args[0], 0755); err != nil {
				return err
			}
			header := &doc.GenManHeader{
				Title:   "SRCEXPORT",
				Section: "1",
				Source:  "srcexport " + version.Version,
				Manual:  "srcexport manual",
			}
			if err := doc.GenManTree(cmd.Root(), header, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten, args[0])
			return nil
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
