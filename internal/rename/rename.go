// Package rename renames a competitor everywhere: the account row, the name
// portion of every archive seat, and every mention inside game transcripts.
//
// WARNING: This is a primitive text rewrite with a few sanity checks, not a
// semantic one. Matching is whole-word, which reduces but does not eliminate
// collisions between a competitor name and game vocabulary: renaming "e4"
// to "e5" will also rewrite move notation in every transcript. That risk is
// documented and accepted; callers pick sane names or use dry-run first.
package rename

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tandemchess/archivist/internal/identity"
	"github.com/tandemchess/archivist/internal/store"
)

// Options configures one rename. Old and New are bare names, never tagged
// identities.
type Options struct {
	Old    string `yaml:"old"`
	New    string `yaml:"new"`
	DryRun bool   `yaml:"dry_run"`
}

// Validate rejects option sets the engine cannot act on safely.
func (o Options) Validate() error {
	switch {
	case o.Old == "":
		return errors.New("rename: old name is empty")
	case o.New == "":
		return errors.New("rename: new name is empty")
	case o.Old == o.New:
		return errors.New("rename: old and new name are identical")
	case strings.Contains(o.Old, identity.Separator):
		return fmt.Errorf("rename: old name %q contains the tag separator; pass the bare name", o.Old)
	case strings.Contains(o.New, identity.Separator):
		return fmt.Errorf("rename: new name %q contains the tag separator", o.New)
	}
	return nil
}

// Report summarizes one rename.
type Report struct {
	Old                string  `json:"old"`
	New                string  `json:"new"`
	DryRun             bool    `json:"dry_run"`
	AccountRowID       int64   `json:"account_rowid"`
	SeatsChanged       int     `json:"seats_changed"`
	TranscriptsChanged int     `json:"transcripts_changed"`
	Rows               []int64 `json:"rows"`
}

// Run renames opts.Old to opts.New across both stores.
//
// The account store commits first, then the archive, as two independent
// transactions; the archive rewrite is one multi-row transaction. Exactly
// one account must match the old name: zero or several is fatal before
// anything is written. In dry-run mode the full report is computed and
// nothing commits.
func Run(ctx context.Context, opts Options, accounts *store.Accounts, archive *store.Archive) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	pattern, err := wordPattern(opts.Old)
	if err != nil {
		return nil, fmt.Errorf("rename: %w", err)
	}

	accountRowID, err := findAccount(ctx, accounts, pattern, opts.Old)
	if err != nil {
		return nil, err
	}

	games, err := archive.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	rep := &Report{Old: opts.Old, New: opts.New, DryRun: opts.DryRun, AccountRowID: accountRowID, Rows: []int64{}}
	updates := []store.GameUpdate{}
	for _, game := range games {
		update, seats, pgnChanged, err := rewriteGame(game, pattern, opts.New)
		if err != nil {
			return nil, err
		}
		if seats == 0 && !pgnChanged {
			continue
		}
		rep.SeatsChanged += seats
		if pgnChanged {
			rep.TranscriptsChanged++
		}
		rep.Rows = append(rep.Rows, game.RowID)
		updates = append(updates, update)
	}

	if opts.DryRun {
		return rep, nil
	}

	if err := accounts.Rename(ctx, accountRowID, opts.New); err != nil {
		return rep, err
	}
	if err := archive.UpdateGames(ctx, updates); err != nil {
		return rep, err
	}
	return rep, nil
}

// wordPattern compiles a whole-word matcher for a literal name.
func wordPattern(name string) (*regexp.Regexp, error) {
	return regexp.Compile(`\b` + regexp.QuoteMeta(name) + `\b`)
}

// findAccount locates the single account holding the old name. Any account
// merely containing the old name as a word means the whole-word heuristic
// cannot distinguish it from the target; that ambiguity is fatal too.
func findAccount(ctx context.Context, accounts *store.Accounts, pattern *regexp.Regexp, old string) (int64, error) {
	all, err := accounts.ListAccounts(ctx)
	if err != nil {
		return 0, err
	}
	var found *store.Account
	for _, account := range all {
		if !pattern.MatchString(account.Name) {
			continue
		}
		if account.Name != old {
			return 0, fmt.Errorf("rename: account %q contains %q as a word; refusing to guess", account.Name, old)
		}
		if found != nil {
			return 0, fmt.Errorf("rename: more than one account matches %q", old)
		}
		a := account
		found = &a
	}
	if found == nil {
		return 0, fmt.Errorf("rename: no account named %q", old)
	}
	return found.RowID, nil
}

// rewriteGame applies the rename to one row: the name portion of each seat,
// and the transcript as free text. Returns the update, the number of seats
// changed, and whether the transcript changed.
func rewriteGame(game store.FinishedGame, pattern *regexp.Regexp, newName string) (store.GameUpdate, int, bool, error) {
	update := store.GameUpdate{RowID: game.RowID}
	seatsChanged := 0
	for i, seat := range game.Seats() {
		kind, name, err := identity.Parse(seat)
		if err != nil {
			return update, 0, false, fmt.Errorf("rowid %d: %w", game.RowID, err)
		}
		replaced := pattern.ReplaceAllLiteralString(name, newName)
		if replaced != name {
			seatsChanged++
		}
		update.Seats[i], err = identity.Join(kind, replaced)
		if err != nil {
			return update, 0, false, fmt.Errorf("rowid %d: %w", game.RowID, err)
		}
	}
	update.PGN = pattern.ReplaceAllLiteralString(game.PGN, newName)
	return update, seatsChanged, update.PGN != game.PGN, nil
}
