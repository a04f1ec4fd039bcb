package service

import "errors"

var (
	// ErrInvalidCredentials is returned for an unknown username or a wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound is returned when a record is absent or not visible to the viewer
	ErrNotFound = errors.New("not found")
)
