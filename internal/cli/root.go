package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jakoblorz/vscpp/internal/filesystem"
	"github.com/jakoblorz/vscpp/internal/tui"
	"github.com/spf13/cobra"
)

// errOperationsFailed signals that at least one requested operation was
// reported as failed. The messages were already printed.
var errOperationsFailed = errors.New("one or more operations failed")

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, prompter tui.Prompter) *cobra.Command {
	return newRootCommand(fs, prompter, tui.IsInteractive)
}

func newRootCommand(fs filesystem.FileSystem, prompter tui.Prompter, interactive func() bool) *cobra.Command {
	cmd := &RootCommand{
		fs:          fs,
		prompter:    prompter,
		interactive: interactive,
	}

	rootCmd := &cobra.Command{
		Use:   "vscpp [name]",
		Short: "Create and maintain C++ projects for VS Code",
		Long: `A CLI tool for scaffolding a C++ project for VS Code and keeping its
header/source units, makefile and include directives in sync.

Without flags, vscpp creates the unit <name>: <name>.h, <name>.cpp and a
makefile entry. Erase and rename also update every include of the unit's
header in the other files of the project.`,
		Example: `  # Initialize a project building bin/demo
  vscpp demo --project

  # Add Logger.h, Logger.cpp and register Logger in the makefile
  vscpp Logger

  # Add a header only
  vscpp Types --noSource

  # Rename Logger to Log everywhere, then switch to release flags
  vscpp Logger --rename Log --release

  # Register every source file missing from the makefile
  vscpp --all`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          cmd.Run,
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&cmd.opts.noSource, "noSource", "n", false, "Add only a header file")
	flags.BoolVarP(&cmd.opts.erase, "erase", "e", false, "Erase the unit and all its references in the other files")
	flags.StringVarP(&cmd.opts.rename, "rename", "r", "", "Rename the unit and all its references in the other files")
	flags.BoolVarP(&cmd.opts.project, "project", "p", false, "Initialize a C++ project in the project directory")
	flags.BoolVarP(&cmd.opts.all, "all", "a", false, "Register every source file missing from the makefile")
	flags.BoolVarP(&cmd.opts.importFile, "importFile", "i", false, "Register the existing source file <name> in the makefile")
	flags.BoolVar(&cmd.opts.release, "release", false, "Switch the makefile to release compiler flags")
	flags.BoolVar(&cmd.opts.debug, "debug", false, "Switch the makefile to debug compiler flags")
	flags.BoolVarP(&cmd.opts.force, "force", "f", false, "Overwrite existing files when initializing a project")
	flags.StringVarP(&cmd.opts.dir, "dir", "C", "", "Project directory (default: current directory)")
	rootCmd.MarkFlagsMutuallyExclusive("release", "debug")

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()
	rootCmd := NewRootCommand(fs, tui.NewHuhPrompter(os.Stdout))

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errOperationsFailed) {
			printError(rootCmd.OutOrStdout(), err)
		}
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

func printError(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, tui.Error(err.Error()))
}
