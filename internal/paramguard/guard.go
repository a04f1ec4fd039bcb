// Package paramguard decodes opaque route parameters before anything
// that depends on them runs. Every failure ends in "not found".
package paramguard

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrNotFound is matched by every guard failure
var ErrNotFound = errors.New("not found")

// Reason distinguishes why a parameter was rejected
type Reason string

const (
	ReasonMissing Reason = "missing"
	ReasonDecode  Reason = "decode"
)

// NotFoundError reports the first rejected parameter
type NotFoundError struct {
	Param  string
	Reason Reason
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("route parameter %q: %s: %s", e.Param, e.Reason, ErrNotFound)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Decrypter is the external decoding collaborator
type Decrypter interface {
	SafeDecryptFromURL(token string) (string, bool)
}

// Params holds raw route parameters by name
type Params map[string]string

// Guard validates and decodes route parameters
type Guard struct {
	decrypter Decrypter
	logger    *zap.Logger
}

// New creates a new guard
func New(decrypter Decrypter, logger *zap.Logger) *Guard {
	return &Guard{decrypter: decrypter, logger: logger}
}

// Require decodes the named parameters in order. It stops at the first
// missing or undecryptable one; missing parameters are never decoded.
func (g *Guard) Require(params Params, names ...string) (map[string]string, error) {
	for _, name := range names {
		if strings.TrimSpace(params[name]) == "" {
			g.logger.Warn("Missing route parameter", zap.String("param", name))
			return nil, &NotFoundError{Param: name, Reason: ReasonMissing}
		}
	}

	decoded := make(map[string]string, len(names))
	for _, name := range names {
		raw := strings.TrimSpace(params[name])
		value, ok := g.decrypter.SafeDecryptFromURL(raw)
		if !ok {
			g.logger.Warn("Failed to decrypt route parameter",
				zap.String("param", name),
				zap.String("encrypted", raw),
			)
			return nil, &NotFoundError{Param: name, Reason: ReasonDecode}
		}
		decoded[name] = value
	}

	return decoded, nil
}

// RequireOne is Require for a single parameter
func (g *Guard) RequireOne(params Params, name string) (string, error) {
	decoded, err := g.Require(params, name)
	if err != nil {
		return "", err
	}
	return decoded[name], nil
}
