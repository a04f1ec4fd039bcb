package service

import (
	"context"

	"labportal/internal/repository"

	"go.uber.org/zap"
)

// RetentionService removes chat transcripts past their retention period
type RetentionService struct {
	transcripts   repository.TranscriptRepository
	retentionDays int
	logger        *zap.Logger
}

// NewRetentionService creates a new retention service
func NewRetentionService(transcripts repository.TranscriptRepository, retentionDays int, logger *zap.Logger) *RetentionService {
	return &RetentionService{
		transcripts:   transcripts,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// CleanupOldData removes transcripts older than the retention period
func (s *RetentionService) CleanupOldData(ctx context.Context) error {
	s.logger.Info("Starting cleanup of old transcripts", zap.Int("retention_days", s.retentionDays))

	err := s.transcripts.CleanOldMessages(ctx, s.retentionDays)
	if err != nil {
		s.logger.Error("Failed to cleanup old transcripts", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully")
	return nil
}
