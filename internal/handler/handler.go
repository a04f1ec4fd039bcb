package handler

import (
	"context"
	"sync"
	"time"

	"labportal/internal/domain"
	"labportal/internal/middleware"
	"labportal/internal/paramguard"
	"labportal/internal/service"
	"labportal/internal/urlcrypt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const requestTimeout = 10 * time.Second

// Handler manages all bot interactions
type Handler struct {
	bot         *tele.Bot
	authService *service.AuthService
	labService  *service.LabService
	chatService *service.ChatService
	links       *urlcrypt.Codec
	guard       *paramguard.Guard
	logger      *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Per-user locks so concurrent button presses don't race on one message
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	labService *service.LabService,
	chatService *service.ChatService,
	links *urlcrypt.Codec,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:           bot,
		authService:   authService,
		labService:    labService,
		chatService:   chatService,
		links:         links,
		guard:         paramguard.New(links, logger),
		logger:        logger,
		states:        make(map[int64]*domain.StateData),
		callbackLocks: make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	handlers := map[string]tele.HandlerFunc{
		"/start":   h.handleStart,
		"/login":   h.handleLogin,
		"/logout":  h.handleLogout,
		"/chat":    h.handleChat,
		"/me":      h.handleMe,
		"/orders":  h.handleOrders,
		"/result":  h.handleResult,
		"/devices": h.handleDevices,
		"/device":  h.handleDevice,
	}

	for _, r := range routes {
		if r.public {
			h.bot.Handle(r.command, handlers[r.command])
			continue
		}
		h.bot.Handle(r.command, handlers[r.command], h.protect(r.command))
	}

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// protect returns the role check of command's route
func (h *Handler) protect(command string) tele.MiddlewareFunc {
	return middleware.RequireRoles(h.authService, h.logger, routeFor(command).roles...)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	copied := *state
	return &copied
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// lockUser serializes callbacks of one user and returns the unlock function
func (h *Handler) lockUser(userID int64) func() {
	h.callbackMux.Lock()
	lock, exists := h.callbackLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.callbackLocks[userID] = lock
	}
	h.callbackMux.Unlock()

	lock.Lock()
	return lock.Unlock
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}
