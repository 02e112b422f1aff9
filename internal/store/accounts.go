package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed accounts_schema.sql
var accountsSchemaSQL string

// Account is a registered account row. Only the columns the maintenance
// toolkit touches are loaded.
type Account struct {
	RowID int64
	Name  string
}

// Accounts provides access to the registered-account database.
type Accounts struct {
	db *sql.DB
}

// OpenAccounts opens the account database at path.
func OpenAccounts(path string) (*Accounts, error) {
	db, err := open(path, accountsSchemaSQL)
	if err != nil {
		return nil, fmt.Errorf("accounts store: %w", err)
	}
	return &Accounts{db: db}, nil
}

// Close closes the database connection.
func (s *Accounts) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer using Accounts methods when available.
func (s *Accounts) DB() *sql.DB {
	return s.db
}

// ListAccounts returns a snapshot of every account, ordered by rowid.
// Returns an empty slice (not nil) for an empty table.
func (s *Accounts) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT rowid, user_name
		FROM accounts
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []Account{}
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.RowID, &a.Name); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return accounts, nil
}

// RegisteredNames returns the set of registered account names.
func (s *Accounts) RegisteredNames(ctx context.Context) (map[string]struct{}, error) {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		names[a.Name] = struct{}{}
	}
	return names, nil
}

// Rename updates the name of the account at rowid in its own transaction.
// Fails if the new name collides with an existing account (UNIQUE column).
func (s *Accounts) Rename(ctx context.Context, rowID int64, newName string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("rename account: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE accounts SET user_name = ? WHERE rowid = ?`, newName, rowID)
	if err != nil {
		return fmt.Errorf("rename account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rename account: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("rename account: rowid %d matched %d rows, want 1", rowID, n)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("rename account: commit: %w", err)
	}
	return nil
}
