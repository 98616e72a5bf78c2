package credstore

import (
	"context"
	"database/sql"
	"fmt"
	"unicode/utf8"

	"eventtracker/internal/client/migrations"
	"eventtracker/internal/dbx"

	"github.com/pressly/goose/v3"
)

const tokenKey = "token"

// SQLiteStore keeps the credential in a metadata key/value table so it
// survives a restart. It never caches in memory: the gateway reads through
// to the database on every request.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Save(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO metadata (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, tokenKey, []byte(token))
		if err != nil {
			return fmt.Errorf("failed to save credential: %w", err)
		}
		return nil
	})
}

// Load returns the stored credential or "". A read failure or a value that
// is not valid UTF-8 is treated as absent.
func (s *SQLiteStore) Load(ctx context.Context) string {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, tokenKey).Scan(&value)
	if err != nil {
		return ""
	}
	if !utf8.Valid(value) {
		return ""
	}
	return string(value)
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, tokenKey)
	if err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the local SQLite store at dsn and
// brings its schema up to date.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
