// Package session holds the authenticated user of each chat, restores it
// from durable storage and decides which commands the user may reach.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"labportal/internal/domain"

	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

// Status is the lifecycle state of a store
type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusRehydrating   Status = "rehydrating"
	StatusAuthenticated Status = "authenticated"
	StatusAnonymous     Status = "anonymous"
)

// Action names the store operation behind a change
type Action string

const (
	ActionRehydrate Action = "rehydrate"
	ActionLogin     Action = "login"
	ActionLogout    Action = "logout"
)

// fsm event names
const (
	eventRehydrate = "rehydrate"
	eventRestore   = "restore"
	eventReset     = "reset"
	eventLogin     = "login"
	eventLogout    = "logout"
)

var (
	// ErrNotReady is returned for login/logout before rehydration resolves
	ErrNotReady = errors.New("session is not rehydrated yet")
	// ErrInvalidProfile is returned when logging in without an id or a known role
	ErrInvalidProfile = errors.New("invalid profile")
)

// State is an immutable snapshot of a store
type State struct {
	Status Status
	User   *domain.Profile
}

// Role returns the user's role, empty when anonymous
func (s State) Role() domain.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// Resolved reports whether rehydration has finished
func (s State) Resolved() bool {
	return s.Status == StatusAuthenticated || s.Status == StatusAnonymous
}

// Change is delivered to subscribers after every transition.
// ReadFailed marks a rehydration that resolved anonymous because storage
// could not be read; the persisted data was never inspected.
type Change struct {
	Action     Action
	State      State
	ReadFailed bool
}

// Storage is durable key-value storage for the persisted slice.
// GetItem returns nil data when the key is absent.
type Storage interface {
	GetItem(ctx context.Context, key string) ([]byte, error)
	SetItem(ctx context.Context, key string, value []byte) error
	RemoveItem(ctx context.Context, key string) error
}

// persisted is the stored shape; only the user field is kept
type persisted struct {
	User *domain.Profile `json:"user"`
}

type subscriber struct {
	id int
	fn func(Change)
}

// Store is the single writer of one session. Subscribers run synchronously
// before the action returns and must not call actions on the same store.
type Store struct {
	logger *zap.Logger

	actionMu sync.Mutex
	machine  *fsm.FSM
	resolved chan struct{}

	stateMu sync.RWMutex
	user    *domain.Profile
	subs    []subscriber
	nextSub int
}

// NewStore creates an uninitialized store
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		logger:   logger,
		resolved: make(chan struct{}),
		machine: fsm.NewFSM(
			string(StatusUninitialized),
			fsm.Events{
				{Name: eventRehydrate, Src: []string{string(StatusUninitialized)}, Dst: string(StatusRehydrating)},
				{Name: eventRestore, Src: []string{string(StatusRehydrating)}, Dst: string(StatusAuthenticated)},
				{Name: eventReset, Src: []string{string(StatusRehydrating)}, Dst: string(StatusAnonymous)},
				{Name: eventLogin, Src: []string{string(StatusAnonymous), string(StatusAuthenticated)}, Dst: string(StatusAuthenticated)},
				{Name: eventLogout, Src: []string{string(StatusAuthenticated), string(StatusAnonymous)}, Dst: string(StatusAnonymous)},
			},
			fsm.Callbacks{},
		),
	}
}

// State returns the current snapshot
func (s *Store) State() State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return State{Status: Status(s.machine.Current()), User: copyProfile(s.user)}
}

// Subscribe registers fn and returns a function that removes it
func (s *Store) Subscribe(fn func(Change)) func() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.stateMu.Lock()
		defer s.stateMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Await blocks until rehydration has resolved or ctx is done
func (s *Store) Await(ctx context.Context) (State, error) {
	select {
	case <-s.resolved:
		return s.State(), nil
	case <-ctx.Done():
		return s.State(), ctx.Err()
	}
}

// Rehydrate restores the session from storage. Absent, unreadable or
// corrupt data resolves to anonymous; the returned error reports only a
// failed storage read. Calling it twice is a no-op.
func (s *Store) Rehydrate(ctx context.Context, storage Storage, key string) (State, error) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	if err := s.fire(eventRehydrate, nil); err != nil {
		return s.State(), nil
	}
	s.notify(Change{Action: ActionRehydrate})

	user, readErr := s.load(ctx, storage, key)

	event := eventReset
	if user != nil {
		event = eventRestore
	}
	if err := s.fire(event, user); err != nil {
		s.logger.Error("Failed to resolve rehydration", zap.String("event", event), zap.Error(err))
		s.resetAnonymous()
	}
	close(s.resolved)
	s.notify(Change{Action: ActionRehydrate, ReadFailed: readErr != nil})

	return s.State(), readErr
}

func (s *Store) load(ctx context.Context, storage Storage, key string) (*domain.Profile, error) {
	data, err := storage.GetItem(ctx, key)
	if err != nil {
		s.logger.Warn("Failed to read persisted session", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		s.logger.Warn("Corrupt persisted session", zap.String("key", key), zap.Error(err))
		return nil, nil
	}
	if err := validateProfile(p.User); err != nil {
		s.logger.Warn("Discarding persisted session", zap.String("key", key), zap.Error(err))
		return nil, nil
	}
	return p.User, nil
}

// Login authenticates the session with profile. A done ctx leaves the
// session untouched.
func (s *Store) Login(ctx context.Context, profile domain.Profile) error {
	if err := validateProfile(&profile); err != nil {
		return err
	}

	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	if !s.State().Resolved() {
		return ErrNotReady
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to login: %w", err)
	}
	if err := s.fire(eventLogin, &profile); err != nil {
		return fmt.Errorf("failed to login: %w", err)
	}
	s.notify(Change{Action: ActionLogin})
	return nil
}

// Logout clears the session; logging out an anonymous session is a no-op
// that still notifies subscribers
func (s *Store) Logout(ctx context.Context) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	if !s.State().Resolved() {
		return ErrNotReady
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	if err := s.fire(eventLogout, nil); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	s.notify(Change{Action: ActionLogout})
	return nil
}

// fire runs an fsm event and sets the user under the state lock.
// Transitions are in memory, so they never see a caller context: a
// cancelled event would leave the machine mid-transition for good.
func (s *Store) fire(event string, user *domain.Profile) error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	err := s.machine.Event(context.Background(), event)
	var noTransition fsm.NoTransitionError
	if err != nil && !errors.As(err, &noTransition) {
		return err
	}

	switch event {
	case eventRestore, eventLogin:
		s.user = copyProfile(user)
	case eventReset, eventLogout:
		s.user = nil
	}
	return nil
}

func (s *Store) resetAnonymous() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.machine.SetState(string(StatusAnonymous))
	s.user = nil
}

// notify fills in the current state and delivers change to every subscriber
func (s *Store) notify(change Change) {
	s.stateMu.RLock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.stateMu.RUnlock()

	change.State = s.State()
	for _, sub := range subs {
		sub.fn(change)
	}
}

func validateProfile(p *domain.Profile) error {
	if p == nil {
		return fmt.Errorf("%w: no user", ErrInvalidProfile)
	}
	if p.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidProfile)
	}
	if !p.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidProfile, p.Role)
	}
	return nil
}

func copyProfile(p *domain.Profile) *domain.Profile {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
