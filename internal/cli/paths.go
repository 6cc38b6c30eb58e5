package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPathsCommand creates the paths command.
func NewPathsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print the resolved environment profile",
		Long: `Print the paths the current environment resolves to.

Useful to verify APP_ENV / DATABASES_DIR before starting the gateway.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPaths(rootOpts, cmd)
		},
	}

	return cmd
}

func runPaths(opts *RootOptions, cmd *cobra.Command) error {
	profile, err := resolveProfile(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration paths:")
	fmt.Fprintf(out, "Environment: %s\n", profile.Env)
	fmt.Fprintf(out, "Databases directory: %s\n", profile.DatabasesDir)
	fmt.Fprintf(out, "SQLite path: %s\n", profile.SQLitePath)
	fmt.Fprintf(out, "Archive root: %s\n", profile.ArchiveRoot)
	fmt.Fprintf(out, "Listen address: %s\n", profile.ListenAddr)
	return nil
}
