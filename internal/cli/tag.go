package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tandemchess/archivist/internal/migrate"
)

// NewTagCompetitorsCommand creates the tag-competitors command.
func NewTagCompetitorsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag-competitors",
		Short: "One-time migration: tag every archive seat as user/ or guest/",
		Long: `Rewrite every seat of every finished game from a bare legacy name to a
tagged competitor identity ("user/<name>" or "guest/<name>"), judged
against the current registered-account set.

The whole archive is rewritten in a single transaction: full commit or
full abort. Rerunning over an already tagged archive fails fast, since
tagged values are not valid bare names.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTagCompetitors(rootOpts, cmd)
		},
	}

	return cmd
}

func runTagCompetitors(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	sess, err := openSession(opts, formatter)
	if err != nil {
		return err
	}
	defer sess.Close()

	formatter.VerboseLog("Tagging %s against accounts in %s", sess.cfg.ArchiveDB, sess.cfg.AccountsDB)

	rep, err := migrate.TagCompetitors(cmd.Context(), sess.accounts, sess.archive)
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodePrecondition, "tagging aborted, nothing committed", err)
	}

	if formatter.JSON() {
		return formatter.Success(rep)
	}
	fmt.Fprintf(formatter.Writer, "Registered users: %d\n", rep.RegisteredNames)
	fmt.Fprintf(formatter.Writer, "Rows rewritten:   %d\n", rep.RowsRewritten)
	fmt.Fprintf(formatter.Writer, "Run id:           %s\n", rep.RunID)
	return nil
}
