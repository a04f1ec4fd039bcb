package handler

import (
	"strings"

	"labportal/internal/chat"
	"labportal/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// handleChat starts a conversation with the lab assistant
func (h *Handler) handleChat(c tele.Context) error {
	userID := c.Sender().ID

	ctx, cancel := requestContext()
	defer cancel()

	greeting := h.chatService.Start(ctx, userID)
	h.SetState(userID, &domain.StateData{
		State:          domain.StateIdle,
		BotQuestion:    greeting,
		LastBotMessage: greeting,
	})
	return c.Send(greeting)
}

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if text == "" || strings.HasPrefix(text, "/") {
		return nil
	}

	state := h.GetState(c.Sender().ID)

	switch state.State {
	case domain.StateWaitingUsername:
		return h.handleUsername(c, text)
	case domain.StateWaitingPassword:
		return h.handlePassword(c, state, text)
	default:
		return h.handleConversation(c, state, text)
	}
}

func (h *Handler) handleConversation(c tele.Context, state *domain.StateData, text string) error {
	userID := c.Sender().ID

	ctx, cancel := requestContext()
	defer cancel()

	reply, handled := h.chatService.Respond(ctx, userID, state, text)

	// an off-topic answer keeps the pending question open
	next := &domain.StateData{State: domain.StateIdle, LastBotMessage: reply}
	switch {
	case !handled && state.BotQuestion != "":
		next.BotQuestion = state.BotQuestion
	case chat.IsQuestion(reply):
		next.BotQuestion = reply
	}
	h.SetState(userID, next)

	return c.Send(reply)
}
