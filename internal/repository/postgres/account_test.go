package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"labportal/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestAccountRepo_GetByUsername(t *testing.T) {
	columns := []string{"id", "username", "full_name", "password_hash", "role", "patient_id", "created_at"}
	created := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		mockError     error
		expected      *domain.Account
		expectedError bool
	}{
		{
			name: "patient account",
			mockRows: sqlmock.NewRows(columns).
				AddRow("a-1", "bn.an", "Trần Văn An", "hash", "ROLE_PATIENT", "p-9", created),
			expected: &domain.Account{
				ID: "a-1", Username: "bn.an", FullName: "Trần Văn An", PasswordHash: "hash",
				Role: domain.RolePatient, PatientID: "p-9", CreatedAt: created,
			},
		},
		{
			name: "staff account without patient id",
			mockRows: sqlmock.NewRows(columns).
				AddRow("a-2", "nv.binh", "Lê Bình", "hash", "ROLE_STAFF", nil, created),
			expected: &domain.Account{
				ID: "a-2", Username: "nv.binh", FullName: "Lê Bình", PasswordHash: "hash",
				Role: domain.RoleStaff, CreatedAt: created,
			},
		},
		{
			name: "lowercase role",
			mockRows: sqlmock.NewRows(columns).
				AddRow("a-3", "bs.lan", "Nguyễn Thị Lan", "hash", " role_doctor ", nil, created),
			expected: &domain.Account{
				ID: "a-3", Username: "bs.lan", FullName: "Nguyễn Thị Lan", PasswordHash: "hash",
				Role: domain.RoleDoctor, CreatedAt: created,
			},
		},
		{
			name: "unknown role",
			mockRows: sqlmock.NewRows(columns).
				AddRow("a-4", "khach", "Khách", "hash", "ROLE_GUEST", nil, created),
			expectedError: true,
		},
		{
			name:      "not found",
			mockError: sql.ErrNoRows,
		},
		{
			name:          "database error",
			mockError:     sql.ErrConnDone,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewAccountRepo(db)

			query := "SELECT id, username, full_name, password_hash, role, patient_id, created_at FROM accounts WHERE username = \\$1"
			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs("user").WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs("user").WillReturnRows(tt.mockRows)
			}

			account, err := repo.GetByUsername(context.Background(), "user")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, account)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
