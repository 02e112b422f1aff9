package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tandemchess/archivist/internal/rename"
	"github.com/tandemchess/archivist/internal/report"
)

// NewRenameUserCommand creates the rename-user command.
func NewRenameUserCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		oldName string
		newName string
		dryRun  bool
		jobs    string
	)

	cmd := &cobra.Command{
		Use:   "rename-user",
		Short: "Rename a competitor across accounts, seats and transcripts",
		Long: `Replace every whole-word occurrence of a bare competitor name: the
account row, the name portion of all four seats of every game, and the
transcript text itself.

WARNING: this is whole-word text replacement with sanity checks, not a
semantic rename. A name colliding with game vocabulary (say, renaming
"e4") will rewrite move notation too. Use --dry-run first.

Pass one rename as --old/--new, or a batch as a YAML file:

    renames:
      - old: alice
        new: alicia`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRenameUser(rootOpts, cmd, oldName, newName, dryRun, jobs)
		},
	}

	cmd.Flags().StringVar(&oldName, "old", "", "current bare name")
	cmd.Flags().StringVar(&newName, "new", "", "replacement bare name")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute the report without committing")
	cmd.Flags().StringVar(&jobs, "jobs", "", "YAML file with a batch of renames")

	return cmd
}

func runRenameUser(opts *RootOptions, cmd *cobra.Command, oldName, newName string, dryRun bool, jobsPath string) error {
	formatter := newFormatter(opts, cmd)

	var jobList []rename.Options
	switch {
	case jobsPath != "" && (oldName != "" || newName != ""):
		return fail(formatter, ExitCommandError, ErrCodeGeneric,
			"--jobs and --old/--new are mutually exclusive", nil)
	case jobsPath != "":
		loaded, err := rename.LoadJobs(jobsPath)
		if err != nil {
			return fail(formatter, ExitCommandError, ErrCodeConfig, "rename jobs", err)
		}
		jobList = loaded
		if dryRun {
			for i := range jobList {
				jobList[i].DryRun = true
			}
		}
	default:
		jobList = []rename.Options{{Old: oldName, New: newName, DryRun: dryRun}}
	}

	sess, err := openSession(opts, formatter)
	if err != nil {
		return err
	}
	defer sess.Close()

	reports := make([]*rename.Report, 0, len(jobList))
	for _, job := range jobList {
		formatter.VerboseLog("Renaming %q to %q (dry run: %v)", job.Old, job.New, job.DryRun)
		rep, err := rename.Run(cmd.Context(), job, sess.accounts, sess.archive)
		if err != nil {
			// A failed job aborts the remainder of the batch; earlier jobs
			// have already committed independently.
			printRenameReports(formatter, reports, sess.cfg.MaxReportGroups)
			return fail(formatter, ExitFailure, ErrCodePrecondition,
				fmt.Sprintf("rename %q -> %q aborted", job.Old, job.New), err)
		}
		reports = append(reports, rep)
	}

	if formatter.JSON() {
		return formatter.Success(reports)
	}
	printRenameReports(formatter, reports, sess.cfg.MaxReportGroups)
	return nil
}

func printRenameReports(formatter *OutputFormatter, reports []*rename.Report, maxGroups int) {
	if formatter.JSON() {
		return
	}
	w := formatter.Writer
	for _, rep := range reports {
		fmt.Fprintf(w, "Rename %q -> %q\n", rep.Old, rep.New)
		fmt.Fprintf(w, "  Account rowid:       %d\n", rep.AccountRowID)
		fmt.Fprintf(w, "  Seats changed:       %d\n", rep.SeatsChanged)
		fmt.Fprintf(w, "  Transcripts changed: %d\n", rep.TranscriptsChanged)
		fmt.Fprintf(w, "  Rows:          %s\n", report.FormatRowIDs(rep.Rows, maxGroups))
		if rep.DryRun {
			fmt.Fprintln(w, "  Dry run: nothing committed")
		}
	}
}
