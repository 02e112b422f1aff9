// Package store provides SQLite-backed access to the two game server
// databases the maintenance toolkit operates on:
//
//   - Accounts: the registered-account store (table accounts)
//   - Archive: the finished-games store (table finished_games)
//
// The stores evolve independently: there is no foreign key between an
// archive seat and an account row. Cross-store consistency is a validation
// concern (see internal/audit), enforced over immutable snapshots rather
// than by the schema.
//
// # Mutation model
//
// Every maintenance operation reads one consistent snapshot up front and
// commits all of its writes in a single transaction at the end, or not at
// all. A batch interrupted before commit leaves the store unchanged. The
// bulk write methods (UpdateSeats, UpdateGames, UpdateTranscripts,
// DeleteGames, Rename) therefore each wrap their whole row set in one
// transaction.
//
// Archive rowids are SQLite rowids: stable, monotonic, never reused after
// deletion. They are the row identifiers every report prints.
//
// # Database configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
package store
