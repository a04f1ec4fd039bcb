package repository

import (
	"context"

	"labportal/internal/domain"
)

// Lookups return (nil, nil) when the row does not exist.

// AccountRepository defines account data operations
type AccountRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
}

// ResultRepository defines lab result data operations
type ResultRepository interface {
	GetResult(ctx context.Context, id int64) (*domain.LabResult, error)
}

// OrderRepository defines test order data operations
type OrderRepository interface {
	ListOrdersByPatient(ctx context.Context, patientID string, limit int) ([]domain.TestOrder, error)
}

// DeviceRepository defines instrument data operations
type DeviceRepository interface {
	GetDevice(ctx context.Context, id int64) (*domain.Device, error)
	ListDevices(ctx context.Context, limit, offset int) ([]domain.Device, error)
	CountDevices(ctx context.Context) (int, error)
}

// TranscriptRepository defines chat transcript operations
type TranscriptRepository interface {
	SaveMessage(ctx context.Context, entry domain.TranscriptEntry) error
	CleanOldMessages(ctx context.Context, days int) error
}
