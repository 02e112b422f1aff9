// Package migrate implements the one-time rewrite that introduced tagged
// competitor identities. Legacy archive rows store four bare names per game;
// the rewrite reinterprets each one as "user/<name>" or "guest/<name>"
// against a snapshot of the registered accounts taken at the start of the
// run.
//
// The pass is deliberately not idempotent. Rerunning it over an already
// tagged archive fails on the first seat, because a tagged value contains
// the separator and is therefore not a valid bare name. Failing fast here is
// the safety property: a second pass that "worked" would double-tag.
package migrate

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tandemchess/archivist/internal/identity"
	"github.com/tandemchess/archivist/internal/store"
)

// Report summarizes a completed rewrite.
type Report struct {
	RunID           string `json:"run_id"`
	RegisteredNames int    `json:"registered_names"`
	RowsRewritten   int    `json:"rows_rewritten"`
}

// TagCompetitors tags every seat of every archive row.
//
// All four seats of all rows are rewritten in a single transaction: the
// archive is either fully on the new convention or untouched. Any seat that
// cannot be tagged (already contains a separator, or belongs to a rated game
// without being registered) aborts the whole run before anything commits.
func TagCompetitors(ctx context.Context, accounts *store.Accounts, archive *store.Archive) (*Report, error) {
	registered, err := accounts.RegisteredNames(ctx)
	if err != nil {
		return nil, err
	}

	games, err := archive.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	updates := make([]store.SeatUpdate, 0, len(games))
	for _, game := range games {
		var tagged [4]string
		for i, name := range game.Seats() {
			tagged[i], err = identity.Tag(name, registered, game.Rated)
			if err != nil {
				return nil, fmt.Errorf("rowid %d: %w", game.RowID, err)
			}
		}
		updates = append(updates, store.SeatUpdate{RowID: game.RowID, Seats: tagged})
	}

	if err := archive.UpdateSeats(ctx, updates); err != nil {
		return nil, err
	}

	return &Report{
		RunID:           uuid.NewString(),
		RegisteredNames: len(registered),
		RowsRewritten:   len(updates),
	}, nil
}
