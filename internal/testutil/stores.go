// Package testutil provides shared fixtures for toolkit tests: temporary
// SQLite stores and stub console binaries.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/tandemchess/archivist/internal/store"
)

// OpenAccounts creates an empty temporary account database.
func OpenAccounts(t *testing.T) *store.Accounts {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secret.db")
	s, err := store.OpenAccounts(path)
	if err != nil {
		t.Fatalf("OpenAccounts() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// OpenArchive creates an empty temporary finished-games database.
func OpenArchive(t *testing.T) *store.Archive {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive.db")
	s, err := store.OpenArchive(path)
	if err != nil {
		t.Fatalf("OpenArchive() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// SeedAccount inserts a registered account.
func SeedAccount(t *testing.T, s *store.Accounts, name string) {
	t.Helper()
	_, err := s.DB().Exec(`INSERT INTO accounts (user_name) VALUES (?)`, name)
	if err != nil {
		t.Fatalf("seed account %q: %v", name, err)
	}
}

// SeedGame inserts a finished game and returns its rowid.
func SeedGame(t *testing.T, s *store.Archive, g store.FinishedGame) int64 {
	t.Helper()
	res, err := s.DB().Exec(`
		INSERT INTO finished_games
		(player_red_a, player_red_b, player_blue_a, player_blue_b, rated, game_pgn)
		VALUES (?, ?, ?, ?, ?, ?)
	`, g.RedA, g.RedB, g.BlueA, g.BlueB, g.Rated, g.PGN)
	if err != nil {
		t.Fatalf("seed game: %v", err)
	}
	rowID, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("seed game rowid: %v", err)
	}
	return rowID
}

// Games reads back every row of the archive, ordered by rowid.
func Games(t *testing.T, s *store.Archive) []store.FinishedGame {
	t.Helper()
	games, err := s.ListGames(t.Context())
	if err != nil {
		t.Fatalf("ListGames() failed: %v", err)
	}
	return games
}
