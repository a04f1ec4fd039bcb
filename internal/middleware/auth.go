package middleware

import (
	"context"
	"time"

	"labportal/internal/domain"
	"labportal/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	profileKey     = "profile"
	sessionTimeout = 5 * time.Second
)

// Replies sent instead of the protected handler
const (
	MsgSessionLoading = "⏳ Phiên đăng nhập đang được tải, vui lòng thử lại sau giây lát."
	MsgSignIn         = "🔒 Vui lòng đăng nhập bằng /login để sử dụng chức năng này."
	MsgForbidden      = "⛔ Bạn không có quyền truy cập chức năng này. Gõ /start để về trang chính."
)

// SessionSource resolves a chat user's session
type SessionSource interface {
	Session(ctx context.Context, userID int64) (session.State, error)
}

// RequireRoles admits the sender only when the session role is one of
// roles. No roles admits any authenticated user. The profile is stored on
// the context for the handler.
func RequireRoles(sessions SessionSource, logger *zap.Logger, roles ...domain.Role) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			ctx, cancel := context.WithTimeout(context.Background(), sessionTimeout)
			defer cancel()

			state, err := sessions.Session(ctx, userID)
			if err != nil {
				logger.Warn("Session not ready in middleware",
					zap.Int64("user_id", userID),
					zap.Error(err),
				)
				return reply(c, MsgSessionLoading)
			}

			decision := session.Authorize(state, roles...)
			switch decision {
			case session.Allow:
				c.Set(profileKey, *state.User)
				return next(c)
			case session.Pending:
				return reply(c, MsgSessionLoading)
			case session.RedirectHome:
				logger.Info("Access denied",
					zap.Int64("user_id", userID),
					zap.String("role", string(state.Role())),
				)
				return reply(c, MsgForbidden)
			default:
				return reply(c, MsgSignIn)
			}
		}
	}
}

// Profile returns the profile admitted by RequireRoles
func Profile(c tele.Context) (domain.Profile, bool) {
	profile, ok := c.Get(profileKey).(domain.Profile)
	return profile, ok
}

// reply answers a button press with an alert and a command with a message
func reply(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
