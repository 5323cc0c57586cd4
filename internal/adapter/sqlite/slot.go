package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	_ "modernc.org/sqlite"
)

const createSlotsTable = `CREATE TABLE IF NOT EXISTS cart_slots (
	slot_key   TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TEXT NOT NULL
)`

// Open opens (and creates when missing) the database file that backs local
// cart slots.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	// a single connection serializes writers to the file
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, createSlotsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create cart_slots table: %w", err)
	}
	return db, nil
}

type cartSlotRepository struct {
	db *sql.DB
}

func NewCartSlotRepository(db *sql.DB) repository.CartSlotRepository {
	return &cartSlotRepository{db: db}
}

func (r *cartSlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, repository.ErrEmptyKey
	}

	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM cart_slots WHERE slot_key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to get cart slot %s: %w", repository.ErrQueryFailed, key, err)
	}
	return value, nil
}

func (r *cartSlotRepository) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return repository.ErrEmptyKey
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cart_slots (slot_key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(slot_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("%w: failed to save cart slot %s: %w", repository.ErrQueryFailed, key, err)
	}
	return nil
}

func (r *cartSlotRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_slots WHERE slot_key = ?`, key); err != nil {
		return fmt.Errorf("%w: failed to delete cart slot %s: %w", repository.ErrQueryFailed, key, err)
	}
	return nil
}
