package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandemchess/archivist/internal/testutil"
)

func TestTagCompetitorsCommand(t *testing.T) {
	f := newLegacyFixture(t)

	out, _, err := execute(t, append([]string{"tag-competitors"}, f.storeFlags()...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Registered users: 2")
	assert.Contains(t, out, "Rows rewritten:   2")

	games := testutil.Games(t, f.archive)
	assert.Equal(t, "user/alice", games[0].RedA)
	assert.Equal(t, "guest/mallory", games[1].RedB)
	assert.Equal(t, "guest/zed", games[1].BlueB)
}

func TestTagCompetitorsCommandJSON(t *testing.T) {
	f := newLegacyFixture(t)

	out, _, err := execute(t, append([]string{"tag-competitors", "--format", "json"}, f.storeFlags()...)...)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), data["rows_rewritten"])
	assert.NotEmpty(t, data["run_id"])
}

func TestTagCompetitorsRerunFails(t *testing.T) {
	f := newLegacyFixture(t)
	args := append([]string{"tag-competitors"}, f.storeFlags()...)

	_, _, err := execute(t, args...)
	require.NoError(t, err)

	out, _, err := execute(t, args...)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "nothing committed")
}

func TestTagCompetitorsRatedGuestAborts(t *testing.T) {
	f := newLegacyFixture(t)
	testutil.SeedGame(t, f.archive, storeGameRated(t, "stranger"))

	_, _, err := execute(t, append([]string{"tag-competitors"}, f.storeFlags()...)...)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	// Abort means no row was tagged, not even the valid ones.
	games := testutil.Games(t, f.archive)
	assert.Equal(t, "alice", games[0].RedA)
}
