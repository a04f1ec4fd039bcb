package handler

import (
	"fmt"
	"strings"

	"labportal/internal/labels"
	"labportal/internal/middleware"
	"labportal/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command. A deep-link payload opens a result.
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	if msg := c.Message(); msg != nil && strings.TrimSpace(msg.Payload) != "" {
		return h.protect("/result")(h.handleResult)(c)
	}

	h.ResetState(userID)

	ctx, cancel := requestContext()
	defer cancel()

	state, err := h.authService.Session(ctx, userID)
	if err != nil {
		h.logger.Warn("Session not ready", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send(middleware.MsgSessionLoading)
	}

	return c.Send(welcomeText(state))
}

func welcomeText(state session.State) string {
	if state.Status == session.StatusAuthenticated && state.User != nil {
		return fmt.Sprintf("🏠 Xin chào, %s (%s)!\n\nBạn có thể:\n%s",
			state.User.FullName, labels.RoleLabel(string(state.User.Role)), menuText(state))
	}
	return "🏠 Chào mừng đến với cổng thông tin phòng xét nghiệm.\n\nBạn có thể:\n" + menuText(state)
}
