package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	_ "modernc.org/sqlite"

	"stillpoint/internal/platform/tx"
)

// SQLiteStore keeps every key in a single kv table. Reads and writes go
// through the transactor DB getter, so calls made inside tx.Manager.Within
// share the surrounding transaction.
type SQLiteStore struct {
	db       *sql.DB
	dbGetter txStdLib.DBGetter
	tx       tx.Manager
}

func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	transactor, dbGetter := txStdLib.NewTransactor(db, txStdLib.NestedTransactionsSavepoints)
	return &SQLiteStore{db: db, dbGetter: dbGetter, tx: tx.FromTransactor(transactor)}, nil
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`)
	if err != nil {
		return fmt.Errorf("ensure kv schema: %w", err)
	}
	return nil
}

// TxManager returns the transaction boundary bound to this database.
func (s *SQLiteStore) TxManager() tx.Manager {
	return s.tx
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}
	var value string
	err := s.dbGetter(ctx).QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	_, err := s.dbGetter(ctx).ExecContext(ctx, `
INSERT INTO kv(key, value, updated_at) VALUES(?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`, key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if _, err := s.dbGetter(ctx).ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
