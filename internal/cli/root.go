// Package cli implements the archivist command surface. Every command is a
// batch job over the two game server databases: it reads a snapshot, runs
// one maintenance pass, commits its writes in bulk, and prints a summary
// report in text or JSON.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tandemchess/archivist/internal/config"
	"github.com/tandemchess/archivist/internal/console"
	"github.com/tandemchess/archivist/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Configuration file plus per-flag overrides. An empty flag value means
	// "use the config file (or its default)".
	ConfigPath    string
	AccountsDB    string
	ArchiveDB     string
	ConsoleBinary string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the archivist CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "archivist",
		Short: "Maintenance toolkit for the tandem chess archive",
		Long: `Maintenance toolkit for the tandem chess server databases.

Operates on the registered-account store and the finished-games archive:
the one-time competitor-identity migration, referential audits, global
competitor renames, and transcript regression passes against the game
console serializer.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a CUE configuration file")
	cmd.PersistentFlags().StringVar(&opts.AccountsDB, "accounts-db", "", "account database path (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.ArchiveDB, "archive-db", "", "archive database path (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.ConsoleBinary, "console", "", "game console binary (overrides config)")

	// Add subcommands
	cmd.AddCommand(NewTagCompetitorsCommand(opts))
	cmd.AddCommand(NewCheckNamesCommand(opts))
	cmd.AddCommand(NewRenameUserCommand(opts))
	cmd.AddCommand(NewTestGamesCommand(opts))
	cmd.AddCommand(NewStripTimestampsCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// Resolve produces the effective configuration: file (or defaults) with
// flag overrides on top.
func (o *RootOptions) Resolve() (config.Config, error) {
	cfg := config.Default()
	if o.ConfigPath != "" {
		loaded, err := config.Load(o.ConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if o.AccountsDB != "" {
		cfg.AccountsDB = o.AccountsDB
	}
	if o.ArchiveDB != "" {
		cfg.ArchiveDB = o.ArchiveDB
	}
	if o.ConsoleBinary != "" {
		cfg.ConsoleBinary = o.ConsoleBinary
	}
	return cfg, nil
}

// newFormatter builds the OutputFormatter for a command invocation.
// Verbose logs go to stderr to avoid corrupting JSON output.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// fail reports the error through the formatter and returns a matching
// ExitError, so the message is printed exactly once.
func fail(formatter *OutputFormatter, exitCode int, errCode, message string, err error) error {
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}
	formatter.Error(errCode, message, nil)
	return &ExitError{Code: exitCode, Message: message}
}

// session bundles the open stores and the console client for one command.
// Commands that never touch the account store leave accounts nil.
type session struct {
	cfg      config.Config
	accounts *store.Accounts
	archive  *store.Archive
	console  *console.Client
}

// openSession resolves configuration and opens both stores. Errors are
// already reported through the formatter.
func openSession(opts *RootOptions, formatter *OutputFormatter) (*session, error) {
	sess, err := openArchiveSession(opts, formatter)
	if err != nil {
		return nil, err
	}
	accounts, err := store.OpenAccounts(sess.cfg.AccountsDB)
	if err != nil {
		sess.Close()
		return nil, fail(formatter, ExitCommandError, ErrCodeStore, "open accounts store", err)
	}
	sess.accounts = accounts
	return sess, nil
}

// openArchiveSession opens the archive only, for read-mostly passes that
// never consult the account store.
func openArchiveSession(opts *RootOptions, formatter *OutputFormatter) (*session, error) {
	cfg, err := opts.Resolve()
	if err != nil {
		return nil, fail(formatter, ExitCommandError, ErrCodeConfig, "configuration", err)
	}

	archive, err := store.OpenArchive(cfg.ArchiveDB)
	if err != nil {
		return nil, fail(formatter, ExitCommandError, ErrCodeStore, "open archive store", err)
	}

	return &session{
		cfg:     cfg,
		archive: archive,
		console: console.New(cfg.ConsoleBinary),
	}, nil
}

// Close closes whatever stores the session opened.
func (s *session) Close() {
	if s.accounts != nil {
		s.accounts.Close()
	}
	s.archive.Close()
}
