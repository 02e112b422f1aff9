package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tandemchess/archivist/internal/audit"
	"github.com/tandemchess/archivist/internal/report"
)

// NewCheckNamesCommand creates the check-names command.
func NewCheckNamesCommand(rootOpts *RootOptions) *cobra.Command {
	var purge, confirm bool

	cmd := &cobra.Command{
		Use:   "check-names",
		Short: "Audit competitor names against the account store and the console",
		Long: `Check every registered account name and every guest name appearing in
the archive against the console's name checker, and verify that every
"user/" seat references an existing account.

Reports the invalid names and the archive rows touching them. With
--purge --confirm, those rows are deleted in one transaction; the purge
never runs implicitly.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckNames(rootOpts, cmd, purge, confirm)
		},
	}

	cmd.Flags().BoolVar(&purge, "purge", false, "delete every row referencing an invalid name")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm the purge (required with --purge)")

	return cmd
}

func runCheckNames(opts *RootOptions, cmd *cobra.Command, purge, confirm bool) error {
	formatter := newFormatter(opts, cmd)
	if purge && !confirm {
		return fail(formatter, ExitCommandError, ErrCodeGeneric,
			"--purge deletes archive rows irrecoverably; rerun with --confirm", nil)
	}

	sess, err := openSession(opts, formatter)
	if err != nil {
		return err
	}
	defer sess.Close()

	formatter.VerboseLog("Checking names via %s", sess.cfg.ConsoleBinary)

	rep, err := audit.Run(cmd.Context(), sess.accounts, sess.archive, sess.console, purge)
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodePrecondition, "audit aborted", err)
	}

	if formatter.JSON() {
		return formatter.Success(rep)
	}
	w := formatter.Writer
	fmt.Fprintf(w, "Registered users: %s\n", formatSet(rep.Registered))
	fmt.Fprintf(w, "Guest players:    %s\n", formatSet(rep.Guests))
	fmt.Fprintf(w, "Bad rows:   %s\n", report.FormatRowIDs(rep.BadRows, sess.cfg.MaxReportGroups))
	if rep.Purged {
		fmt.Fprintln(w, "Rows deleted")
	}
	return nil
}

func formatSet(s audit.SetReport) string {
	return fmt.Sprintf("%d of %d names invalid: [%s]",
		len(s.Invalid), s.Total, strings.Join(s.Invalid, ", "))
}
