package migrate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandemchess/archivist/internal/identity"
	"github.com/tandemchess/archivist/internal/migrate"
	"github.com/tandemchess/archivist/internal/store"
	"github.com/tandemchess/archivist/internal/testutil"
)

func TestTagCompetitors(t *testing.T) {
	accounts := testutil.OpenAccounts(t)
	archive := testutil.OpenArchive(t)
	testutil.SeedAccount(t, accounts, "alice")
	testutil.SeedAccount(t, accounts, "bob")

	testutil.SeedGame(t, archive, store.FinishedGame{
		RedA: "alice", RedB: "bob", BlueA: "alice2", BlueB: "mallory",
		Rated: false, PGN: "1. e4 e5\n",
	})
	testutil.SeedGame(t, archive, store.FinishedGame{
		RedA: "alice", RedB: "bob", BlueA: "bob", BlueB: "alice",
		Rated: true, PGN: "1. d4 d5\n",
	})

	rep, err := migrate.TagCompetitors(t.Context(), accounts, archive)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.RegisteredNames)
	assert.Equal(t, 2, rep.RowsRewritten)
	assert.NotEmpty(t, rep.RunID)

	games := testutil.Games(t, archive)
	assert.Equal(t, [4]string{"user/alice", "user/bob", "guest/alice2", "guest/mallory"}, games[0].Seats())
	assert.Equal(t, [4]string{"user/alice", "user/bob", "user/bob", "user/alice"}, games[1].Seats())

	// Transcripts are untouched by the identity rewrite.
	assert.Equal(t, "1. e4 e5\n", games[0].PGN)
}

func TestTagCompetitorsRatedUnregisteredAborts(t *testing.T) {
	accounts := testutil.OpenAccounts(t)
	archive := testutil.OpenArchive(t)
	testutil.SeedAccount(t, accounts, "alice")

	testutil.SeedGame(t, archive, store.FinishedGame{
		RedA: "alice", RedB: "alice", BlueA: "alice", BlueB: "alice", Rated: false,
	})
	testutil.SeedGame(t, archive, store.FinishedGame{
		RedA: "mallory", RedB: "alice", BlueA: "alice", BlueB: "alice", Rated: true,
	})

	_, err := migrate.TagCompetitors(t.Context(), accounts, archive)
	require.Error(t, err)

	var tagErr *identity.TagError
	require.True(t, errors.As(err, &tagErr))
	assert.Equal(t, "mallory", tagErr.Name)

	// Nothing committed, including the valid first row.
	for _, g := range testutil.Games(t, archive) {
		assert.Equal(t, "alice", g.RedB)
	}
}

func TestTagCompetitorsRerunFailsFast(t *testing.T) {
	accounts := testutil.OpenAccounts(t)
	archive := testutil.OpenArchive(t)
	testutil.SeedAccount(t, accounts, "alice")
	testutil.SeedGame(t, archive, store.FinishedGame{
		RedA: "alice", RedB: "bob", BlueA: "carol", BlueB: "dave",
	})

	_, err := migrate.TagCompetitors(t.Context(), accounts, archive)
	require.NoError(t, err)

	// A second run sees tagged values, which are not valid bare names.
	_, err = migrate.TagCompetitors(t.Context(), accounts, archive)
	require.Error(t, err)

	var tagErr *identity.TagError
	require.True(t, errors.As(err, &tagErr))

	games := testutil.Games(t, archive)
	assert.Equal(t, "user/alice", games[0].RedA)
}

func TestTagCompetitorsEmptyArchive(t *testing.T) {
	accounts := testutil.OpenAccounts(t)
	archive := testutil.OpenArchive(t)

	rep, err := migrate.TagCompetitors(t.Context(), accounts, archive)
	require.NoError(t, err)
	assert.Equal(t, 0, rep.RowsRewritten)
}
