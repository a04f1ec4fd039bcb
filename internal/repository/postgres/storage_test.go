package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestStorageRepo_GetItem(t *testing.T) {
	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		mockError     error
		expected      []byte
		expectedError bool
	}{
		{
			name:     "stored value",
			mockRows: sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"user":null}`)),
			expected: []byte(`{"user":null}`),
		},
		{
			name:      "absent key",
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

			repo := NewStorageRepo(db)

			query := "SELECT value FROM client_storage WHERE key = \\$1"
			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs("persist:auth:1").WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs("persist:auth:1").WillReturnRows(tt.mockRows)
			}

			value, err := repo.GetItem(context.Background(), "persist:auth:1")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, value)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStorageRepo_SetItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewStorageRepo(db)
	value := []byte(`{"user":{"id":"u-1"}}`)

	mock.ExpectExec("INSERT INTO client_storage").
		WithArgs("persist:auth:1", value).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.SetItem(context.Background(), "persist:auth:1", value)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorageRepo_RemoveItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewStorageRepo(db)

	mock.ExpectExec("DELETE FROM client_storage").
		WithArgs("persist:auth:1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.RemoveItem(context.Background(), "persist:auth:1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
