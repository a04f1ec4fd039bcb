package service

import (
	"context"

	"labportal/internal/chat"
	"labportal/internal/domain"
	"labportal/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatService answers free text through the assistant and keeps a transcript
type ChatService struct {
	assistant   *chat.Assistant
	transcripts repository.TranscriptRepository
	logger      *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(assistant *chat.Assistant, transcripts repository.TranscriptRepository, logger *zap.Logger) *ChatService {
	return &ChatService{
		assistant:   assistant,
		transcripts: transcripts,
		logger:      logger,
	}
}

// Start records and returns the greeting
func (s *ChatService) Start(ctx context.Context, userID int64) string {
	s.record(ctx, userID, "bot", chat.Greeting)
	return chat.Greeting
}

// Respond answers text given the conversation so far. handled reports
// whether the pending question was answered by a conversation step.
func (s *ChatService) Respond(ctx context.Context, userID int64, state *domain.StateData, text string) (reply string, handled bool) {
	answerCtx := chat.NewAnswerContext(text, state.BotQuestion, state.LastBotMessage)
	reply, handled = s.assistant.Reply(answerCtx)

	s.record(ctx, userID, "user", text)
	s.record(ctx, userID, "bot", reply)
	return reply, handled
}

// record never fails the conversation; transcript errors are only logged
func (s *ChatService) record(ctx context.Context, userID int64, sender, text string) {
	entry := domain.TranscriptEntry{
		ID:     uuid.NewString(),
		UserID: userID,
		Sender: sender,
		Text:   text,
	}
	if err := s.transcripts.SaveMessage(ctx, entry); err != nil {
		s.logger.Warn("Failed to save transcript",
			zap.Int64("user_id", userID),
			zap.String("sender", sender),
			zap.Error(err),
		)
	}
}
