package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"labportal/internal/domain"
)

// AccountRepo implements repository.AccountRepository
type AccountRepo struct {
	db *sql.DB
}

// NewAccountRepo creates a new account repository
func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// GetByUsername loads an account by its login name
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var a domain.Account
	var role string
	var patientID sql.NullString
	query := `
		SELECT id, username, full_name, password_hash, role, patient_id, created_at
		FROM accounts
		WHERE username = $1
	`
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&a.ID, &a.Username, &a.FullName, &a.PasswordHash, &role, &patientID, &a.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	parsed, ok := domain.ParseRole(role)
	if !ok {
		return nil, fmt.Errorf("account %s has unknown role %q", a.ID, role)
	}
	a.Role = parsed
	if patientID.Valid {
		a.PatientID = patientID.String
	}
	return &a, nil
}
