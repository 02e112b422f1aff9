package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed archive_schema.sql
var archiveSchemaSQL string

// FinishedGame is one completed match from the archive. Only the columns
// the maintenance toolkit touches are loaded; the row is identified by its
// SQLite rowid, which is stable and never reused.
type FinishedGame struct {
	RowID int64
	RedA  string
	RedB  string
	BlueA string
	BlueB string
	Rated bool
	PGN   string
}

// Seats returns the four seat values in a fixed order: red A, red B,
// blue A, blue B.
func (g *FinishedGame) Seats() [4]string {
	return [4]string{g.RedA, g.RedB, g.BlueA, g.BlueB}
}

// SeatUpdate carries replacement seat values for one row.
type SeatUpdate struct {
	RowID int64
	Seats [4]string
}

// GameUpdate carries replacement seat values and a replacement transcript
// for one row.
type GameUpdate struct {
	RowID int64
	Seats [4]string
	PGN   string
}

// Archive provides access to the finished-games database.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens the finished-games database at path.
func OpenArchive(path string) (*Archive, error) {
	db, err := open(path, archiveSchemaSQL)
	if err != nil {
		return nil, fmt.Errorf("archive store: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close closes the database connection.
func (s *Archive) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer using Archive methods when available.
func (s *Archive) DB() *sql.DB {
	return s.db
}

const gameColumns = `rowid, player_red_a, player_red_b, player_blue_a, player_blue_b, rated, game_pgn`

func scanGame(rows *sql.Rows) (FinishedGame, error) {
	var g FinishedGame
	if err := rows.Scan(&g.RowID, &g.RedA, &g.RedB, &g.BlueA, &g.BlueB, &g.Rated, &g.PGN); err != nil {
		return FinishedGame{}, fmt.Errorf("scan finished game: %w", err)
	}
	return g, nil
}

func (s *Archive) listGames(ctx context.Context, query string, args ...any) ([]FinishedGame, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query finished games: %w", err)
	}
	defer rows.Close()

	games := []FinishedGame{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate finished games: %w", err)
	}
	return games, nil
}

// ListGames returns a snapshot of every finished game, ordered by rowid.
// Returns an empty slice (not nil) for an empty table.
func (s *Archive) ListGames(ctx context.Context) ([]FinishedGame, error) {
	return s.listGames(ctx, `
		SELECT `+gameColumns+`
		FROM finished_games
		ORDER BY rowid ASC
	`)
}

// ListGamesRange returns the finished games with min <= rowid <= max,
// ordered by rowid.
func (s *Archive) ListGamesRange(ctx context.Context, min, max int64) ([]FinishedGame, error) {
	return s.listGames(ctx, `
		SELECT `+gameColumns+`
		FROM finished_games
		WHERE rowid BETWEEN ? AND ?
		ORDER BY rowid ASC
	`, min, max)
}

// UpdateSeats rewrites the four seat columns of every listed row in one
// transaction. Either every update commits or none does.
func (s *Archive) UpdateSeats(ctx context.Context, updates []SeatUpdate) error {
	return s.inTx(ctx, "update seats", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			UPDATE finished_games
			SET player_red_a = ?, player_red_b = ?, player_blue_a = ?, player_blue_b = ?
			WHERE rowid = ?
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, u := range updates {
			if err := execOneRow(ctx, stmt, u.RowID, u.Seats[0], u.Seats[1], u.Seats[2], u.Seats[3], u.RowID); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateGames rewrites the seat columns and the transcript of every listed
// row in one transaction.
func (s *Archive) UpdateGames(ctx context.Context, updates []GameUpdate) error {
	return s.inTx(ctx, "update games", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			UPDATE finished_games
			SET player_red_a = ?, player_red_b = ?, player_blue_a = ?, player_blue_b = ?, game_pgn = ?
			WHERE rowid = ?
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, u := range updates {
			if err := execOneRow(ctx, stmt, u.RowID, u.Seats[0], u.Seats[1], u.Seats[2], u.Seats[3], u.PGN, u.RowID); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateTranscripts rewrites the transcript of every listed row in one
// transaction.
func (s *Archive) UpdateTranscripts(ctx context.Context, transcripts map[int64]string) error {
	return s.inTx(ctx, "update transcripts", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			UPDATE finished_games SET game_pgn = ? WHERE rowid = ?
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for rowID, pgn := range transcripts {
			if err := execOneRow(ctx, stmt, rowID, pgn, rowID); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteGames removes every listed row in one transaction. Rowids are not
// reused by SQLite after deletion, so reports referencing deleted rows stay
// unambiguous.
func (s *Archive) DeleteGames(ctx context.Context, rowIDs []int64) error {
	return s.inTx(ctx, "delete games", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			DELETE FROM finished_games WHERE rowid = ?
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, rowID := range rowIDs {
			if err := execOneRow(ctx, stmt, rowID, rowID); err != nil {
				return err
			}
		}
		return nil
	})
}

// inTx runs fn inside a transaction, committing on success and rolling back
// on any error.
func (s *Archive) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}
	return nil
}

// execOneRow executes stmt and verifies exactly one row was touched.
// Touching zero rows means the snapshot went stale under us, which violates
// the exclusive-access assumption; abort the whole transaction.
func execOneRow(ctx context.Context, stmt *sql.Stmt, rowID int64, args ...any) error {
	res, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return fmt.Errorf("rowid %d: %w", rowID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rowid %d: %w", rowID, err)
	}
	if n != 1 {
		return fmt.Errorf("rowid %d matched %d rows, want 1", rowID, n)
	}
	return nil
}
