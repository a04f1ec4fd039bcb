package domain

import "time"

// LabResult is a stored HL7 result message for one test order
type LabResult struct {
	ID        int64
	OrderID   int64
	PatientID string
	TestName  string
	RawHL7    string
	CreatedAt time.Time
}

// Observation is a single OBX line of a lab result
type Observation struct {
	Code   string
	Name   string
	Value  string
	Units  string
	Range  string
	Flag   string
	Status string
}

// Device is a laboratory instrument
type Device struct {
	ID        int64
	Name      string
	Model     string
	Status    string
	UpdatedAt time.Time
}

// TestOrder is a requested laboratory test
type TestOrder struct {
	ID        int64
	PatientID string
	TestName  string
	Status    string
	ResultID  int64 // zero until a result is stored
	CreatedAt time.Time
}

// TranscriptEntry is one chat message kept for audit
type TranscriptEntry struct {
	ID        string
	UserID    int64
	Sender    string // "user" or "bot"
	Text      string
	CreatedAt time.Time
}
