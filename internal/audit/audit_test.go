package audit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandemchess/archivist/internal/audit"
	"github.com/tandemchess/archivist/internal/store"
	"github.com/tandemchess/archivist/internal/testutil"
)

// rejectList rejects exactly the listed names.
type rejectList map[string]bool

func (r rejectList) CheckName(_ context.Context, name string) bool {
	return !r[name]
}

func seedTaggedArchive(t *testing.T) (*store.Accounts, *store.Archive, []int64) {
	t.Helper()
	accounts := testutil.OpenAccounts(t)
	archive := testutil.OpenArchive(t)
	testutil.SeedAccount(t, accounts, "alice")
	testutil.SeedAccount(t, accounts, "bob")

	ids := []int64{
		testutil.SeedGame(t, archive, store.FinishedGame{
			RedA: "user/alice", RedB: "user/bob", BlueA: "user/alice", BlueB: "user/bob",
			Rated: true, PGN: "1. e4 e5\n",
		}),
		testutil.SeedGame(t, archive, store.FinishedGame{
			RedA: "user/alice", RedB: "guest/zz", BlueA: "guest/mallory", BlueB: "user/bob",
			PGN: "1. d4 d5\n",
		}),
		testutil.SeedGame(t, archive, store.FinishedGame{
			RedA: "guest/zz", RedB: "guest/zz", BlueA: "guest/zz", BlueB: "guest/zz",
			PGN: "1. c4 c5\n",
		}),
	}
	return accounts, archive, ids
}

func TestAuditCleanArchive(t *testing.T) {
	accounts, archive, _ := seedTaggedArchive(t)

	rep, err := audit.Run(t.Context(), accounts, archive, rejectList{}, false)
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Registered.Total)
	assert.Empty(t, rep.Registered.Invalid)
	assert.Equal(t, 2, rep.Guests.Total) // zz and mallory, deduplicated
	assert.Empty(t, rep.Guests.Invalid)
	assert.Empty(t, rep.BadRows)
	assert.False(t, rep.Purged)
}

func TestAuditBadGuestTaintsRows(t *testing.T) {
	accounts, archive, ids := seedTaggedArchive(t)

	rep, err := audit.Run(t.Context(), accounts, archive, rejectList{"zz": true}, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"zz"}, rep.Guests.Invalid)
	assert.Empty(t, rep.Registered.Invalid)
	assert.Equal(t, []int64{ids[1], ids[2]}, rep.BadRows)

	// Report-only mode must not touch the archive.
	assert.Len(t, testutil.Games(t, archive), 3)
}

func TestAuditBadRegisteredName(t *testing.T) {
	accounts, archive, ids := seedTaggedArchive(t)

	rep, err := audit.Run(t.Context(), accounts, archive, rejectList{"bob": true}, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"bob"}, rep.Registered.Invalid)
	assert.Equal(t, []int64{ids[0], ids[1]}, rep.BadRows)
}

func TestAuditUnreachableCheckerRejectsEverything(t *testing.T) {
	accounts, archive, ids := seedTaggedArchive(t)

	// A checker that can never be reached classifies every name invalid;
	// the run itself still succeeds.
	rep, err := audit.Run(t.Context(), accounts, archive,
		rejectList{"alice": true, "bob": true, "zz": true, "mallory": true}, false)
	require.NoError(t, err)
	assert.Equal(t, ids, rep.BadRows)
}

func TestAuditIsIdempotent(t *testing.T) {
	accounts, archive, _ := seedTaggedArchive(t)
	checker := rejectList{"mallory": true}

	first, err := audit.Run(t.Context(), accounts, archive, checker, false)
	require.NoError(t, err)
	second, err := audit.Run(t.Context(), accounts, archive, checker, false)
	require.NoError(t, err)

	assert.Equal(t, first.BadRows, second.BadRows)
	assert.Equal(t, first.Registered, second.Registered)
	assert.Equal(t, first.Guests, second.Guests)
}

func TestAuditReferentialViolationIsFatal(t *testing.T) {
	accounts, archive, _ := seedTaggedArchive(t)
	testutil.SeedGame(t, archive, store.FinishedGame{
		RedA: "user/ghost", RedB: "user/alice", BlueA: "user/bob", BlueB: "user/alice",
	})

	_, err := audit.Run(t.Context(), accounts, archive, rejectList{}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestAuditUntaggedSeatIsFatal(t *testing.T) {
	accounts, archive, _ := seedTaggedArchive(t)
	testutil.SeedGame(t, archive, store.FinishedGame{
		RedA: "alice", RedB: "user/alice", BlueA: "user/bob", BlueB: "user/alice",
	})

	_, err := audit.Run(t.Context(), accounts, archive, rejectList{}, false)
	require.Error(t, err)
}

func TestAuditPurge(t *testing.T) {
	accounts, archive, ids := seedTaggedArchive(t)

	rep, err := audit.Run(t.Context(), accounts, archive, rejectList{"zz": true}, true)
	require.NoError(t, err)
	assert.True(t, rep.Purged)
	assert.Equal(t, []int64{ids[1], ids[2]}, rep.BadRows)

	games := testutil.Games(t, archive)
	require.Len(t, games, 1)
	assert.Equal(t, ids[0], games[0].RowID)
}

func TestAuditPurgeNothingToDo(t *testing.T) {
	accounts, archive, _ := seedTaggedArchive(t)

	rep, err := audit.Run(t.Context(), accounts, archive, rejectList{}, true)
	require.NoError(t, err)
	assert.False(t, rep.Purged)
	assert.Len(t, testutil.Games(t, archive), 3)
}
