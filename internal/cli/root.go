// Package cli implements the comptadb command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"compta/database/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	ConfigFile string
}

// NewRootCommand creates the root command for the comptadb CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "comptadb",
		Short: "Gateway to the personal bookkeeping database",
		Long: `comptadb serves a small HTTP gateway in front of the bookkeeping
SQLite database and its bank-statement archive, and imports legacy
spreadsheet data into the store.`,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "path to YAML config file (default: $COMPTA_CONFIG)")

	// Add subcommands
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewPathsCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// resolveProfile resolves the environment profile for a command invocation.
func resolveProfile(opts *RootOptions) (*config.Profile, error) {
	profile, err := config.Resolve(os.Getenv, opts.ConfigFile)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to resolve configuration", err)
	}
	return profile, nil
}
