package postgres

import (
	"context"
	"database/sql"

	"labportal/internal/domain"
)

// TranscriptRepo implements repository.TranscriptRepository
type TranscriptRepo struct {
	db *sql.DB
}

// NewTranscriptRepo creates a new transcript repository
func NewTranscriptRepo(db *sql.DB) *TranscriptRepo {
	return &TranscriptRepo{db: db}
}

// SaveMessage stores one chat message
func (r *TranscriptRepo) SaveMessage(ctx context.Context, entry domain.TranscriptEntry) error {
	query := `
		INSERT INTO chat_transcripts (id, user_id, sender, text)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, entry.ID, entry.UserID, entry.Sender, entry.Text)
	return err
}

// CleanOldMessages deletes messages older than specified days
func (r *TranscriptRepo) CleanOldMessages(ctx context.Context, days int) error {
	query := `
		DELETE FROM chat_transcripts
		WHERE created_at < NOW() - INTERVAL '1 day' * $1
	`
	_, err := r.db.ExecContext(ctx, query, days)
	return err
}
