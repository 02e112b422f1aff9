package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tandemchess/archivist/internal/store"
	"github.com/tandemchess/archivist/internal/testutil"
)

// execute runs the root command with args and returns stdout, stderr and
// the execution error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// fixture holds the store paths every command test passes as flags.
type fixture struct {
	accountsDB string
	archiveDB  string
	accounts   *store.Accounts
	archive    *store.Archive
}

func (f *fixture) storeFlags() []string {
	return []string{"--accounts-db", f.accountsDB, "--archive-db", f.archiveDB}
}

// newFixture creates empty temporary stores and keeps them open for
// seeding and verification.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		accountsDB: filepath.Join(dir, "secret.db"),
		archiveDB:  filepath.Join(dir, "archive.db"),
	}

	accounts, err := store.OpenAccounts(f.accountsDB)
	require.NoError(t, err)
	t.Cleanup(func() { accounts.Close() })
	f.accounts = accounts

	archive, err := store.OpenArchive(f.archiveDB)
	require.NoError(t, err)
	t.Cleanup(func() { archive.Close() })
	f.archive = archive

	return f
}

// newLegacyFixture seeds stores in the pre-migration convention: bare
// names in every seat.
func newLegacyFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	testutil.SeedAccount(t, f.accounts, "alice")
	testutil.SeedAccount(t, f.accounts, "bob")
	testutil.SeedGame(t, f.archive, store.FinishedGame{
		RedA: "alice", RedB: "bob", BlueA: "alice", BlueB: "bob",
		Rated: true, PGN: "1. e4 e5\n",
	})
	testutil.SeedGame(t, f.archive, store.FinishedGame{
		RedA: "alice", RedB: "mallory", BlueA: "bob", BlueB: "zed",
		Rated: false, PGN: "1. d4 d5\n",
	})
	return f
}

// storeGameRated builds a rated legacy game seating the given name.
func storeGameRated(t *testing.T, name string) store.FinishedGame {
	t.Helper()
	return store.FinishedGame{
		RedA: name, RedB: "alice", BlueA: "bob", BlueB: "alice",
		Rated: true, PGN: "1. e4\n",
	}
}

// newTaggedFixture seeds stores in the post-migration convention.
func newTaggedFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	testutil.SeedAccount(t, f.accounts, "alice")
	testutil.SeedAccount(t, f.accounts, "bob")
	testutil.SeedGame(t, f.archive, store.FinishedGame{
		RedA: "user/alice", RedB: "user/bob", BlueA: "user/alice", BlueB: "user/bob",
		Rated: true, PGN: "[Red \"alice\"]\n1. e4 e5\n",
	})
	testutil.SeedGame(t, f.archive, store.FinishedGame{
		RedA: "user/alice", RedB: "guest/mallory", BlueA: "user/bob", BlueB: "guest/zed",
		Rated: false, PGN: "1. d4 d5\n",
	})
	return f
}
