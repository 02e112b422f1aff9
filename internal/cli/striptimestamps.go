package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tandemchess/archivist/internal/transcript"
)

// NewStripTimestampsCommand creates the strip-timestamps command.
func NewStripTimestampsCommand(rootOpts *RootOptions) *cobra.Command {
	var from, to int64

	cmd := &cobra.Command{
		Use:   "strip-timestamps",
		Short: "Strip embedded transcript timestamps over a rowid range",
		Long: `Run every transcript with --from <= rowid <= --to (inclusive) through
the console's timestamp-stripping mode and write the changed transcripts
back in a single transaction.

Rows the serializer rejects are counted as failed and left untouched.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStripTimestamps(rootOpts, cmd, from, to)
		},
	}

	cmd.Flags().Int64Var(&from, "from", 0, "first rowid of the range")
	cmd.Flags().Int64Var(&to, "to", 0, "last rowid of the range (inclusive)")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")

	return cmd
}

func runStripTimestamps(opts *RootOptions, cmd *cobra.Command, from, to int64) error {
	formatter := newFormatter(opts, cmd)
	sess, err := openArchiveSession(opts, formatter)
	if err != nil {
		return err
	}
	defer sess.Close()

	formatter.VerboseLog("Stripping timestamps in rows %d..%d via %s", from, to, sess.cfg.ConsoleBinary)

	rep, err := transcript.StripTimestamps(cmd.Context(), sess.archive, sess.console, from, to)
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodeStore, "strip pass aborted", err)
	}

	if formatter.JSON() {
		return formatter.Success(rep)
	}
	w := formatter.Writer
	fmt.Fprintf(w, "Updated:     %d\n", rep.Updated)
	fmt.Fprintf(w, "Not updated: %d\n", rep.Unchanged)
	fmt.Fprintf(w, "Failed:      %d\n", rep.Failed)
	return nil
}
