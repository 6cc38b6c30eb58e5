package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"compta/database/internal/httpapi"
	"compta/database/internal/logging"
	"compta/database/internal/store"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP gateway",
		Long: `Start the HTTP gateway in front of the bookkeeping store.

The environment profile is resolved once at startup from APP_ENV and
DATABASES_DIR (optionally overlaid from a YAML config file). Each request
opens its own connection to the SQLite database.

Example:
  APP_ENV=local DATABASES_DIR=$HOME/Databases comptadb serve
  comptadb serve --config ./compta.yaml --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(rootOpts)
		},
	}

	return cmd
}

func runServe(opts *RootOptions) error {
	profile, err := resolveProfile(opts)
	if err != nil {
		return err
	}

	level := profile.LogLevel
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logging.Setup(level, profile.LogFormat)

	slog.Info("profile resolved",
		"env", string(profile.Env),
		"sqlite_path", profile.SQLitePath,
		"archive_root", profile.ArchiveRoot,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpapi.New(profile, store.NewProvider(profile.SQLitePath))
	if err := srv.ListenAndServe(ctx); err != nil {
		return WrapExitError(ExitFailure, "server failed", err)
	}
	return nil
}
