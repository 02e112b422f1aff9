// Package audit cross-checks the tagged archive against the account store
// and the console's name oracle.
//
// Two independent failure classes come out of a run:
//
//   - Referential violations: a "user/" seat whose bare name is not a
//     registered account. The migration only ever produced "user/" tags for
//     registered names, so this means tag corruption and the run aborts.
//   - Invalid names: any bare name, registered or guest, the console's name
//     checker rejects. These are reported and, in purge mode, every row
//     touching one is deleted.
//
// Guest names have no registry of their own; the only way to enumerate them
// is to scan every "guest/" seat in the archive. One bad guest name can
// therefore taint arbitrarily many rows.
package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tandemchess/archivist/internal/identity"
	"github.com/tandemchess/archivist/internal/report"
	"github.com/tandemchess/archivist/internal/store"
)

// NameChecker judges whether a bare name is legal. A checker that cannot be
// reached reports every name invalid; it never fails the run.
type NameChecker interface {
	CheckName(ctx context.Context, name string) bool
}

// SetReport describes one checked name set.
type SetReport struct {
	Total   int      `json:"total"`
	Invalid []string `json:"invalid"`
}

// Report summarizes an audit run. Given an unchanged archive and account
// store, two successive runs produce identical reports (modulo RunID).
type Report struct {
	RunID      string    `json:"run_id"`
	Registered SetReport `json:"registered"`
	Guests     SetReport `json:"guests"`
	BadRows    []int64   `json:"bad_rows"`
	Purged     bool      `json:"purged"`
}

// Run audits the archive against the account store and checker. With purge
// set, every offending row is deleted in one transaction after the scan;
// the deletion is all-or-nothing, not row-by-row recoverable.
func Run(ctx context.Context, accounts *store.Accounts, archive *store.Archive, checker NameChecker, purge bool) (*Report, error) {
	registered, err := accounts.RegisteredNames(ctx)
	if err != nil {
		return nil, err
	}

	// One snapshot serves both the guest scan and the bad-row scan.
	games, err := archive.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	guests, err := guestNames(games, registered)
	if err != nil {
		return nil, err
	}

	rep := &Report{RunID: uuid.NewString()}
	badNames := make(map[string]struct{})
	rep.Registered = checkSet(ctx, checker, registered, badNames)
	rep.Guests = checkSet(ctx, checker, guests, badNames)
	rep.BadRows = badRows(games, badNames)

	if purge && len(rep.BadRows) > 0 {
		if err := archive.DeleteGames(ctx, rep.BadRows); err != nil {
			return rep, err
		}
		rep.Purged = true
	}

	return rep, nil
}

// guestNames collects the bare names of every "guest/" seat, verifying the
// referential invariant of "user/" seats along the way.
func guestNames(games []store.FinishedGame, registered map[string]struct{}) (map[string]struct{}, error) {
	guests := make(map[string]struct{})
	for _, game := range games {
		for _, seat := range game.Seats() {
			kind, name, err := identity.Parse(seat)
			if err != nil {
				return nil, fmt.Errorf("rowid %d: %w", game.RowID, err)
			}
			switch kind {
			case identity.KindUser:
				if _, ok := registered[name]; !ok {
					return nil, fmt.Errorf("rowid %d: %q is tagged as a registered user but no such account exists", game.RowID, name)
				}
			case identity.KindGuest:
				guests[name] = struct{}{}
			}
		}
	}
	return guests, nil
}

// checkSet runs every name of the set through the checker, recording the
// rejects both in the returned SetReport and in the shared badNames set.
func checkSet(ctx context.Context, checker NameChecker, names map[string]struct{}, badNames map[string]struct{}) SetReport {
	rep := SetReport{Total: len(names), Invalid: []string{}}
	for _, name := range report.SortedKeys(names) {
		if !checker.CheckName(ctx, name) {
			rep.Invalid = append(rep.Invalid, name)
			badNames[name] = struct{}{}
		}
	}
	return rep
}

// badRows returns the rowid of every game with at least one seat whose bare
// name is bad, in ascending order.
func badRows(games []store.FinishedGame, badNames map[string]struct{}) []int64 {
	rows := []int64{}
	for _, game := range games {
		for _, seat := range game.Seats() {
			_, name, err := identity.Parse(seat)
			if err != nil {
				continue // already rejected by guestNames
			}
			if _, bad := badNames[name]; bad {
				rows = append(rows, game.RowID)
				break
			}
		}
	}
	return rows
}
