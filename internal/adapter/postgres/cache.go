package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/lloydngcobo/PCO/internal/core/ports"
)

// PostgresBackend keeps cache entries in a cache_entries table. Expiry
// is enforced by filtering on expires_at; rows found expired on read
// are deleted opportunistically. Construction pings the database and
// fails fast so the caller can fall back to the in-memory backend.
type PostgresBackend struct {
	db *sql.DB
}

func NewPostgresBackend(ctx context.Context, host, port, user, password, name string) (*PostgresBackend, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, name)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &PostgresBackend{db: db}, nil
}

// DB exposes the underlying handle for running migrations.
func (b *PostgresBackend) DB() *sql.DB {
	return b.db
}

func (b *PostgresBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	var expiresAt time.Time

	query := `SELECT value, expires_at FROM cache_entries WHERE key = $1`
	err := b.db.QueryRowContext(ctx, query, key).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	if time.Now().After(expiresAt) {
		// Delete only the row that was observed expired; a concurrent
		// Set commits a new expires_at and must not be wiped out.
		b.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = $1 AND expires_at = $2`, key, expiresAt)
		return nil, ports.ErrCacheMiss
	}
	return value, nil
}

func (b *PostgresBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	query := `INSERT INTO cache_entries (key, value, expires_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at`

	_, err := b.db.ExecContext(ctx, query, key, value, time.Now().Add(ttl))
	return err
}

func (b *PostgresBackend) Delete(ctx context.Context, key string) error {
	_, err := b.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = $1`, key)
	return err
}

func (b *PostgresBackend) Clear(ctx context.Context) error {
	_, err := b.db.ExecContext(ctx, `TRUNCATE cache_entries`)
	return err
}

func (b *PostgresBackend) Exists(ctx context.Context, key string) (bool, error) {
	var found bool
	query := `SELECT EXISTS(SELECT 1 FROM cache_entries WHERE key = $1 AND expires_at > now())`
	if err := b.db.QueryRowContext(ctx, query, key).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

// Sweep deletes every expired row and returns the count.
func (b *PostgresBackend) Sweep(ctx context.Context) (int64, error) {
	result, err := b.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (b *PostgresBackend) Close() error {
	return b.db.Close()
}

var _ ports.CacheBackend = (*PostgresBackend)(nil)
