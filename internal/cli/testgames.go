package cli

import (
	"github.com/spf13/cobra"

	"github.com/tandemchess/archivist/internal/transcript"
)

// NewTestGamesCommand creates the test-games command.
func NewTestGamesCommand(rootOpts *RootOptions) *cobra.Command {
	var maxGroups int

	cmd := &cobra.Command{
		Use:   "test-games",
		Short: "Round-trip every transcript through the console serializer",
		Long: `Feed every archived transcript through the console's parse/re-serialize
mode and classify each row: stable (byte-identical), changed
(re-serialized differently), or failed (the serializer rejected it).

Read-only: the archive is never written. The report prints rowid ranges
per class, truncated to the configured number of groups.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTestGames(rootOpts, cmd, maxGroups)
		},
	}

	cmd.Flags().IntVar(&maxGroups, "max-groups", 0, "rowid ranges per line (0 = config value)")

	return cmd
}

func runTestGames(opts *RootOptions, cmd *cobra.Command, maxGroups int) error {
	formatter := newFormatter(opts, cmd)
	sess, err := openArchiveSession(opts, formatter)
	if err != nil {
		return err
	}
	defer sess.Close()

	if maxGroups <= 0 {
		maxGroups = sess.cfg.MaxReportGroups
	}

	formatter.VerboseLog("Round-tripping transcripts through %s", sess.cfg.ConsoleBinary)

	rep, err := transcript.TestGames(cmd.Context(), sess.archive, sess.console)
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodeStore, "regression pass aborted", err)
	}

	if formatter.JSON() {
		return formatter.Success(rep)
	}
	_, err = formatter.Writer.Write([]byte(rep.Format(maxGroups)))
	return err
}
