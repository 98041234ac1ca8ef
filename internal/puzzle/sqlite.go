// internal/puzzle/sqlite.go
//
// SQLite-backed puzzle bank.
// Responsibilities:
//   - Opening SQLite with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying the embedded schema migrations (idempotent, recorded in _migrations).
//   - Reading the bank ordered by position, and replacing it wholesale (import).
//
// The database is only a bank source; no player data is ever written to it.

package puzzle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// migration is one named schema step.
type migration struct {
	name string
	sql  string
}

// migrations run in order; names are recorded once applied.
var migrations = []migration{
	{
		name: "001_puzzles.sql",
		sql: `CREATE TABLE IF NOT EXISTS puzzles (
			position INTEGER PRIMARY KEY,
			solution TEXT NOT NULL,
			clue1    TEXT NOT NULL DEFAULT '',
			clue2    TEXT NOT NULL DEFAULT '',
			clue3    TEXT NOT NULL DEFAULT '',
			clue4    TEXT NOT NULL DEFAULT '',
			clue5    TEXT NOT NULL DEFAULT ''
		);`,
	},
}

// openDB opens (and creates if missing) a SQLite database file.
// The parent directory is created for relative paths such as ./data/puzzles.db.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies pending migrations, each in its own transaction.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	for _, m := range migrations {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, m.name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", m.name).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", m.name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.name, err)
		}
		log.Info().Str("migration", m.name).Msg("applied")
	}
	return nil
}

// LoadSQLite reads the bank from the puzzles table, ordered by position.
func LoadSQLite(ctx context.Context, dsn string) (*Bank, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := migrate(ctx, db); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT solution, clue1, clue2, clue3, clue4, clue5 FROM puzzles ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query puzzles: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		row := make([]string, 1+ClueCount)
		if err := rows.Scan(&row[0], &row[1], &row[2], &row[3], &row[4], &row[5]); err != nil {
			return nil, err
		}
		r, err := FromRow(row)
		if err != nil {
			return nil, fmt.Errorf("puzzle %d: %w", len(records), err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return NewBank(records)
}

// SaveSQLite replaces the puzzles table with the bank contents.
func SaveSQLite(ctx context.Context, dsn string, b *Bank) error {
	if b.Len() == 0 {
		return ErrEmptyBank
	}
	db, err := openDB(dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrate(ctx, db); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM puzzles`); err != nil {
		return fmt.Errorf("clear puzzles: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO puzzles (position, solution, clue1, clue2, clue3, clue4, clue5) VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range b.records {
		if _, err := stmt.ExecContext(ctx, i, r.Solution,
			r.Clues[0], r.Clues[1], r.Clues[2], r.Clues[3], r.Clues[4]); err != nil {
			return fmt.Errorf("insert puzzle %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info().Int("count", b.Len()).Str("db", dsn).Msg("puzzle bank saved")
	return nil
}
