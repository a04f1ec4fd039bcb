package handler

import (
	"strings"
	"unicode"

	"labportal/internal/paramguard"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// routeParams collects a route's single parameter: the callback data
// after prefix for buttons, the command payload otherwise
func routeParams(c tele.Context, name, prefix string) paramguard.Params {
	if cb := c.Callback(); cb != nil {
		data := cleanCallbackData(cb.Data)
		if !strings.HasPrefix(data, prefix) {
			return paramguard.Params{}
		}
		return paramguard.Params{name: strings.TrimPrefix(data, prefix)}
	}
	if msg := c.Message(); msg != nil {
		return paramguard.Params{name: strings.TrimSpace(msg.Payload)}
	}
	return paramguard.Params{}
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// Already edited by another callback: acknowledge only
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// show edits the pressed button's message, or sends a new one for commands
func (h *Handler) show(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	opts := []interface{}{}
	if markup != nil {
		opts = append(opts, markup)
	}

	if c.Callback() != nil {
		if err := c.Edit(text, opts...); err != nil {
			if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
				return nil // Message was already modified, just acknowledged
			}
			return c.Send(text, opts...)
		}
		return c.Respond()
	}
	return c.Send(text, opts...)
}

// notFound is the reply for every guard or lookup miss
func (h *Handler) notFound(c tele.Context) error {
	return answer(c, msgNotFound)
}

// answer alerts on a button press and sends a message for commands
func answer(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	userID := c.Sender().ID
	unlock := h.lockUser(userID)
	defer unlock()

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.Int64("user_id", userID),
	)

	// Handle by Data prefix (dynamic buttons)
	switch {
	case strings.HasPrefix(data, pagePrefix):
		return h.protect("/devices")(h.handleDevicesPage)(c)
	case strings.HasPrefix(data, devicePrefix):
		return h.protect("/device")(h.handleDevice)(c)
	case strings.HasPrefix(data, resultPrefix):
		return h.protect("/result")(h.handleResult)(c)
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}
