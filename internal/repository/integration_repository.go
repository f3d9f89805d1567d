package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/storage-booking/internal/model"
)

// ListAPIKeys returns the stored keys with their sealed values; opening
// them is the caller's job.
func (s *SQLStore) ListAPIKeys(ctx context.Context) ([]model.APIKey, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, service, key_name, sealed_value, environment, created_at FROM api_keys ORDER BY service, key_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.APIKey{}
	for rows.Next() {
		var k model.APIKey
		if err := rows.Scan(&k.ID, &k.Service, &k.KeyName, &k.SealedValue, &k.Environment, &k.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// UpsertAPIKey relies on the unique (service, key_name) index.  The stored
// id is read back so the caller sees the surviving row.
func (s *SQLStore) UpsertAPIKey(ctx context.Context, k *model.APIKey) error {
	const q = `INSERT INTO api_keys (id, service, key_name, sealed_value, environment, created_at)
               VALUES (?, ?, ?, ?, ?, ?)
               ON DUPLICATE KEY UPDATE sealed_value = VALUES(sealed_value), environment = VALUES(environment)`
	if _, err := s.db.ExecContext(ctx, q, k.ID, k.Service, k.KeyName, k.SealedValue, k.Environment, k.CreatedAt.UTC()); err != nil {
		return err
	}
	err := s.db.QueryRowContext(ctx, `SELECT id, created_at FROM api_keys WHERE service = ? AND key_name = ?`,
		k.Service, k.KeyName).Scan(&k.ID, &k.CreatedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}

func (s *SQLStore) DeleteAPIKey(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM api_keys WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
