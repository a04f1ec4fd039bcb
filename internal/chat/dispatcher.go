// Package chat holds the assistant's answer-pattern dispatcher.
package chat

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// AnswerContext is built once per incoming user message
type AnswerContext struct {
	UserAnswer       string
	NormalizedAnswer string
	BotQuestion      string
	LastBotMessage   string
}

// NewAnswerContext normalizes the raw answer
func NewAnswerContext(userAnswer, botQuestion, lastBotMessage string) AnswerContext {
	return AnswerContext{
		UserAnswer:       userAnswer,
		NormalizedAnswer: strings.ToLower(strings.TrimSpace(userAnswer)),
		BotQuestion:      botQuestion,
		LastBotMessage:   lastBotMessage,
	}
}

// HandlerFunc produces the follow-up for a matched question. An empty
// reply means the handler has nothing to say.
type HandlerFunc func(ctx AnswerContext) (string, error)

// Entry registers a handler for a family of bot questions
type Entry struct {
	ID          string
	Priority    int // lower runs first; ties keep registration order
	Patterns    []string
	Description string
	Handler     HandlerFunc
}

type compiledEntry struct {
	Entry
	patterns []*regexp.Regexp
}

// Registry is an immutable, ordered set of entries
type Registry struct {
	entries []compiledEntry
	logger  *zap.Logger
}

// NewRegistry validates and orders entries. Patterns match case-insensitively.
func NewRegistry(logger *zap.Logger, entries ...Entry) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	seen := make(map[string]bool, len(entries))
	compiled := make([]compiledEntry, 0, len(entries))

	for _, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("entry id cannot be empty")
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("duplicate entry id %q", e.ID)
		}
		seen[e.ID] = true

		if e.Handler == nil {
			return nil, fmt.Errorf("entry %q has no handler", e.ID)
		}
		if len(e.Patterns) == 0 {
			return nil, fmt.Errorf("entry %q has no patterns", e.ID)
		}

		ce := compiledEntry{Entry: e}
		for _, p := range e.Patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("entry %q: invalid pattern %q: %w", e.ID, p, err)
			}
			ce.patterns = append(ce.patterns, re)
		}
		compiled = append(compiled, ce)
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].Priority < compiled[j].Priority
	})

	return &Registry{entries: compiled, logger: logger}, nil
}

// IDs returns entry ids in dispatch order
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.ID
	}
	return ids
}

// Match returns the id of the first entry whose patterns match question
func (r *Registry) Match(question string) (string, bool) {
	e := r.match(question)
	if e == nil {
		return "", false
	}
	return e.ID, true
}

func (r *Registry) match(question string) *compiledEntry {
	for i := range r.entries {
		for _, re := range r.entries[i].patterns {
			if re.MatchString(question) {
				return &r.entries[i]
			}
		}
	}
	return nil
}

// Dispatch runs the first matching handler. It reports false when nothing
// matched or the handler produced no reply, returned an error or panicked.
func (r *Registry) Dispatch(ctx AnswerContext) (string, bool) {
	e := r.match(ctx.BotQuestion)
	if e == nil {
		return "", false
	}

	reply, err := r.invoke(e, ctx)
	if err != nil {
		r.logger.Warn("Answer handler failed",
			zap.String("entry", e.ID),
			zap.String("bot_question", ctx.BotQuestion),
			zap.Error(err),
		)
		return "", false
	}
	if reply == "" {
		return "", false
	}
	return reply, true
}

func (r *Registry) invoke(e *compiledEntry, ctx AnswerContext) (reply string, err error) {
	defer func() {
		if p := recover(); p != nil {
			reply = ""
			err = fmt.Errorf("handler panic: %v", p)
		}
	}()
	return e.Handler(ctx)
}
