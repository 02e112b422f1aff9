// Package transcript runs archive transcripts through the console's
// serializer: a read-only regression pass over the whole archive, and a
// write-back pass that strips broken embedded timestamps from a rowid range.
package transcript

import (
	"context"
	"fmt"
	"strings"

	"github.com/tandemchess/archivist/internal/report"
	"github.com/tandemchess/archivist/internal/store"
)

// Serializer is the console's transcript interface (see internal/console).
type Serializer interface {
	RoundTrip(ctx context.Context, pgn string) (string, error)
	StripTimestamps(ctx context.Context, pgn string) (string, error)
}

// RoundTripReport classifies every archive row by what the serializer did
// to its transcript: echoed it byte-for-byte (stable), re-serialized it
// differently (changed), or refused it (failed).
type RoundTripReport struct {
	Stable  []int64 `json:"stable"`
	Changed []int64 `json:"changed"`
	Failed  []int64 `json:"failed"`
}

// TestGames round-trips every transcript in the archive. Serializer
// failures classify the row as failed and the pass continues; the archive
// is never written.
func TestGames(ctx context.Context, archive *store.Archive, serializer Serializer) (*RoundTripReport, error) {
	games, err := archive.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	rep := &RoundTripReport{Stable: []int64{}, Changed: []int64{}, Failed: []int64{}}
	for _, game := range games {
		out, err := serializer.RoundTrip(ctx, game.PGN)
		switch {
		case err != nil:
			rep.Failed = append(rep.Failed, game.RowID)
		case out == game.PGN:
			rep.Stable = append(rep.Stable, game.RowID)
		default:
			rep.Changed = append(rep.Changed, game.RowID)
		}
	}
	return rep, nil
}

// Format renders the classic three-line regression summary with compacted
// rowid ranges, maxGroups ranges per line at most.
func (r *RoundTripReport) Format(maxGroups int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "OK, stable:  %s\n", report.FormatRowIDs(r.Stable, maxGroups))
	fmt.Fprintf(&b, "OK, changed: %s\n", report.FormatRowIDs(r.Changed, maxGroups))
	fmt.Fprintf(&b, "Failed:      %s\n", report.FormatRowIDs(r.Failed, maxGroups))
	return b.String()
}

// StripReport summarizes a timestamp-strip pass.
type StripReport struct {
	Updated   int     `json:"updated"`
	Unchanged int     `json:"unchanged"`
	Failed    int     `json:"failed"`
	Rows      []int64 `json:"rows"`
}

// StripTimestamps feeds every transcript with from <= rowid <= to
// (inclusive) through the serializer's timestamp-stripping mode and writes
// the changed transcripts back in one transaction. Rows the serializer
// rejects are counted and skipped; they never block the rest of the range.
func StripTimestamps(ctx context.Context, archive *store.Archive, serializer Serializer, from, to int64) (*StripReport, error) {
	if from > to {
		return nil, fmt.Errorf("strip timestamps: empty range %d..%d", from, to)
	}
	games, err := archive.ListGamesRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	rep := &StripReport{Rows: []int64{}}
	updates := map[int64]string{}
	for _, game := range games {
		out, err := serializer.StripTimestamps(ctx, game.PGN)
		switch {
		case err != nil:
			rep.Failed++
		case out == game.PGN:
			rep.Unchanged++
		default:
			rep.Updated++
			rep.Rows = append(rep.Rows, game.RowID)
			updates[game.RowID] = out
		}
	}

	if len(updates) > 0 {
		if err := archive.UpdateTranscripts(ctx, updates); err != nil {
			return rep, err
		}
	}
	return rep, nil
}
