package handler

import (
	"errors"
	"fmt"

	"labportal/internal/domain"
	"labportal/internal/labels"
	"labportal/internal/middleware"
	"labportal/internal/service"
	"labportal/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgAskUsername    = "👤 Nhập tên đăng nhập:"
	msgAskPassword    = "🔑 Nhập mật khẩu:"
	msgBadCredentials = "❌ Sai tên đăng nhập hoặc mật khẩu. Gõ /login để thử lại."
	msgLoggedOut      = "👋 Bạn đã đăng xuất."
	msgError          = "Đã xảy ra lỗi. Vui lòng thử lại sau."
)

// handleLogin starts the username and password prompts
func (h *Handler) handleLogin(c tele.Context) error {
	userID := c.Sender().ID

	ctx, cancel := requestContext()
	defer cancel()

	state, err := h.authService.Session(ctx, userID)
	if err != nil {
		h.logger.Warn("Session not ready", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send(middleware.MsgSessionLoading)
	}
	if state.Status == session.StatusAuthenticated {
		return c.Send(fmt.Sprintf("Bạn đã đăng nhập với vai trò %s. Gõ /logout để đăng xuất.",
			labels.RoleLabel(string(state.Role()))))
	}

	h.SetState(userID, &domain.StateData{State: domain.StateWaitingUsername})
	return c.Send(msgAskUsername)
}

// handleLogout clears the session and its persisted copy
func (h *Handler) handleLogout(c tele.Context) error {
	userID := c.Sender().ID

	ctx, cancel := requestContext()
	defer cancel()

	if err := h.authService.Logout(ctx, userID); err != nil {
		h.logger.Error("Failed to log out", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send(msgError)
	}

	h.ResetState(userID)
	return c.Send(msgLoggedOut)
}

// handleMe shows the signed-in account
func (h *Handler) handleMe(c tele.Context) error {
	profile, ok := middleware.Profile(c)
	if !ok {
		return c.Send(middleware.MsgSignIn)
	}

	text := fmt.Sprintf("👤 %s\nTên đăng nhập: %s\nVai trò: %s",
		profile.FullName, profile.Username, labels.RoleLabel(string(profile.Role)))
	if profile.PatientID != "" {
		text += "\nMã bệnh nhân: " + profile.PatientID
	}
	return c.Send(text)
}

func (h *Handler) handleUsername(c tele.Context, username string) error {
	h.SetState(c.Sender().ID, &domain.StateData{
		State:           domain.StateWaitingPassword,
		PendingUsername: username,
	})
	return c.Send(msgAskPassword)
}

func (h *Handler) handlePassword(c tele.Context, state *domain.StateData, password string) error {
	userID := c.Sender().ID

	// The password must not stay in the chat history
	if err := c.Delete(); err != nil {
		h.logger.Debug("Failed to delete password message", zap.Int64("user_id", userID), zap.Error(err))
	}

	ctx, cancel := requestContext()
	defer cancel()

	profile, err := h.authService.Login(ctx, userID, state.PendingUsername, password)
	h.ResetState(userID)
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.logger.Info("Login rejected",
			zap.Int64("user_id", userID),
			zap.String("username", state.PendingUsername),
		)
		return c.Send(msgBadCredentials)
	}
	if err != nil {
		h.logger.Error("Failed to log in", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send(msgError)
	}

	loggedIn := session.State{Status: session.StatusAuthenticated, User: &profile}
	return c.Send("✅ Đăng nhập thành công!\n\n" + welcomeText(loggedIn))
}
