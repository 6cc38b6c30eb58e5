package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"compta/database/internal/importer"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Database string
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <workbook.xlsx>",
		Short: "Import a legacy spreadsheet into the store",
		Long: `Import a legacy bookkeeping workbook into the SQLite store.

Each sheet is loaded into its own table (table name = sheet name),
replacing any existing table with that name. The destination defaults to
the resolved profile's SQLite path.

Example:
  comptadb import ./legacy/REVOLUT_AVRIL_2025.xlsx
  comptadb import ./legacy.xlsx --db /tmp/scratch.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default: profile path)")

	return cmd
}

func runImport(opts *ImportOptions, workbookPath string, cmd *cobra.Command) error {
	dbPath := opts.Database
	if dbPath == "" {
		profile, err := resolveProfile(opts.RootOptions)
		if err != nil {
			return err
		}
		dbPath = profile.SQLitePath
	}

	reports, err := importer.ImportWorkbook(cmd.Context(), workbookPath, dbPath)
	if err != nil {
		return WrapExitError(ExitFailure, "import failed", err)
	}

	for _, report := range reports {
		fmt.Fprintf(cmd.OutOrStdout(), "Sheet %q loaded into %s (table: %s, rows: %d)\n",
			report.Sheet, dbPath, report.Table, report.Rows)
	}
	return nil
}
