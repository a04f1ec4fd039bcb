package domain

import "time"

// Account represents a portal account stored in the database
type Account struct {
	ID           string
	Username     string
	FullName     string
	PasswordHash string
	Role         Role
	PatientID    string // empty for non-patient accounts
	CreatedAt    time.Time
}

// Profile is the authenticated user held by a session
type Profile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	Role      Role   `json:"role"`
	PatientID string `json:"patientId,omitempty"`
}

// Profile returns the session view of the account
func (a *Account) Profile() Profile {
	return Profile{
		ID:        a.ID,
		Username:  a.Username,
		FullName:  a.FullName,
		Role:      a.Role,
		PatientID: a.PatientID,
	}
}

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle            UserState = "idle"
	StateWaitingUsername UserState = "waiting_username"
	StateWaitingPassword UserState = "waiting_password"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State           UserState
	PendingUsername string

	// Conversation with the assistant
	BotQuestion    string
	LastBotMessage string
}
