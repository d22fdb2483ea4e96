package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/caseadmin/internal/dbx"
)

type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) expired(exp sql.NullInt64) bool {
	return exp.Valid && exp.Int64 <= r.now().Unix()
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var (
		value []byte
		exp   sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM local_storage WHERE key = ?`, key).Scan(&value, &exp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get local_storage[%s]: %w", key, err)
	}
	if r.expired(exp) {
		if err := r.Delete(ctx, key); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte, expiresAt time.Time) error {
	var exp sql.NullInt64
	if !expiresAt.IsZero() {
		exp = sql.NullInt64{Int64: expiresAt.Unix(), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO local_storage (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, key, value, exp)
	if err != nil {
		return fmt.Errorf("failed to set local_storage[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM local_storage WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete local_storage[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM local_storage`)
	if err != nil {
		return fmt.Errorf("failed to clear local_storage: %w", err)
	}
	return nil
}

// Atomic runs fn inside a transaction when the handle can begin one. A
// repository already bound to a transaction runs fn directly.
func (r *SQLiteRepository) Atomic(ctx context.Context, fn func(tx Repository) error) error {
	db, ok := r.db.(dbx.TxBeginner)
	if !ok {
		return fn(r)
	}
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(&SQLiteRepository{db: tx, now: r.now})
	})
}

// Purge deletes every expired row and reports how many were removed.
func (r *SQLiteRepository) Purge(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM local_storage WHERE expires_at IS NOT NULL AND expires_at <= ?`, r.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge local_storage: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to purge local_storage: %w", err)
	}
	return n, nil
}

// List returns unexpired entries.
func (r *SQLiteRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, expires_at FROM local_storage`)
	if err != nil {
		return nil, fmt.Errorf("failed to list local_storage: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var (
			key   string
			value []byte
			exp   sql.NullInt64
		)
		if err := rows.Scan(&key, &value, &exp); err != nil {
			return nil, fmt.Errorf("failed to scan local_storage row: %w", err)
		}
		if r.expired(exp) {
			continue
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate local_storage rows: %w", err)
	}

	return result, nil
}
