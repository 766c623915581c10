package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/japaniel/polski/pkg/app"
	"github.com/japaniel/polski/pkg/config"
	"github.com/japaniel/polski/pkg/db"
	"github.com/japaniel/polski/pkg/schedule"
	"github.com/japaniel/polski/pkg/session"
	"github.com/japaniel/polski/pkg/verify"
)

func main() {
	// Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		insert   bool
		report   bool
		database string
	)

	cmd := &cobra.Command{
		Use:   "polski [--insert | --report] [--database=<path>]",
		Short: "Learn Polish vocabulary using spaced repetition",
		Long: `Polski quizzes you on the Polish words due for revision today.
New words are reviewed 1, 3, 5, 8, 13, 19, 25 and 35 days after they are added.
With nothing to revise it switches to insert mode.`,
		Version:       app.BuildVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("database") {
				cfg.Database.Path = database
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			logger := app.NewLogger(cfg.Log, cmd.ErrOrStderr())

			ctx := cmd.Context()
			conn, err := db.Open(ctx, cfg.Database.Path)
			if err != nil {
				return err
			}
			defer conn.Close()
			logger.Debug("database opened", "path", cfg.Database.Path)

			v, err := verify.New(cfg.Quiz.MatchThreshold)
			if err != nil {
				return err
			}
			store := db.NewStore(conn)
			ctl := session.NewController(store, schedule.New(store, nil), v, cmd.InOrStdin(), cmd.OutOrStdout())
			ctl.Logger = logger
			ctl.Color = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

			return ctl.Run(ctx, session.Options{Insert: insert, Report: report})
		},
	}

	cmd.SetVersionTemplate("polski {{.Version}}\n")
	flags := cmd.Flags()
	flags.BoolVarP(&insert, "insert", "i", false, "insert new word iterations, starting from today")
	flags.BoolVarP(&report, "report", "r", false, "display a report of all daily iterations run (not implemented)")
	flags.StringVarP(&database, "database", "d", "db.sqlite3", "path to the SQLite database")
	cmd.MarkFlagsMutuallyExclusive("insert", "report")

	return cmd
}
