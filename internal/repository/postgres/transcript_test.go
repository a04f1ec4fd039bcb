package postgres

import (
	"context"
	"fmt"
	"testing"

	"labportal/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestTranscriptRepo_SaveMessage(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewTranscriptRepo(db)
	entry := domain.TranscriptEntry{ID: "e-1", UserID: 123, Sender: "user", Text: "xin chào"}

	mock.ExpectExec("INSERT INTO chat_transcripts").
		WithArgs("e-1", int64(123), "user", "xin chào").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.SaveMessage(context.Background(), entry)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranscriptRepo_CleanOldMessages(t *testing.T) {
	tests := []struct {
		name          string
		mockError     error
		expectedError bool
	}{
		{name: "success"},
		{name: "database error", mockError: fmt.Errorf("db error"), expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewTranscriptRepo(db)

			exec := mock.ExpectExec("DELETE FROM chat_transcripts").WithArgs(60)
			if tt.mockError != nil {
				exec.WillReturnError(tt.mockError)
			} else {
				exec.WillReturnResult(sqlmock.NewResult(0, 4))
			}

			err = repo.CleanOldMessages(context.Background(), 60)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
