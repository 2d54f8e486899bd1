package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/homa/internal/snapshot"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var payload string

	err := s.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE key = $1`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, snapshot.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("getting snapshot: %w", err)
	}

	return []byte(payload), nil
}

func (s *Store) Put(ctx context.Context, key string, payload []byte) error {
	query := `
		INSERT INTO snapshots (key, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
	`
	if _, err := s.db.ExecContext(ctx, query, key, string(payload)); err != nil {
		return fmt.Errorf("putting snapshot: %w", err)
	}

	return nil
}
