package postgres

import (
	"context"
	"database/sql"
)

// StorageRepo implements session.Storage on the client_storage table
type StorageRepo struct {
	db *sql.DB
}

// NewStorageRepo creates a new client storage repository
func NewStorageRepo(db *sql.DB) *StorageRepo {
	return &StorageRepo{db: db}
}

// GetItem returns the stored value, nil when absent
func (r *StorageRepo) GetItem(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	query := `SELECT value FROM client_storage WHERE key = $1`
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// SetItem upserts a value
func (r *StorageRepo) SetItem(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO client_storage (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, key, value)
	return err
}

// RemoveItem deletes a value; removing an absent key is not an error
func (r *StorageRepo) RemoveItem(ctx context.Context, key string) error {
	query := `DELETE FROM client_storage WHERE key = $1`
	_, err := r.db.ExecContext(ctx, query, key)
	return err
}
