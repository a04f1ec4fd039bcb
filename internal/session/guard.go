package session

import "labportal/internal/domain"

// Decision is the outcome of a route check
type Decision int

const (
	// Pending means rehydration has not resolved; no redirect may happen yet
	Pending Decision = iota
	Allow
	RedirectSignIn
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Allow:
		return "allow"
	case RedirectSignIn:
		return "redirect_sign_in"
	case RedirectHome:
		return "redirect_home"
	}
	return "unknown"
}

// Authorize compares the session role against the route allow-list.
// An empty allow-list admits any authenticated user.
func Authorize(state State, allowed ...domain.Role) Decision {
	switch state.Status {
	case StatusUninitialized, StatusRehydrating:
		return Pending
	case StatusAuthenticated:
		if state.User == nil {
			return RedirectSignIn
		}
	default:
		return RedirectSignIn
	}

	if len(allowed) == 0 {
		return Allow
	}
	for _, role := range allowed {
		if state.User.Role == role {
			return Allow
		}
	}
	return RedirectHome
}
