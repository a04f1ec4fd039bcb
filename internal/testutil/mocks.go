package testutil

import (
	"context"

	"labportal/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock for AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// MockClientStorage is a mock for session.Storage
type MockClientStorage struct {
	mock.Mock
}

func (m *MockClientStorage) GetItem(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockClientStorage) SetItem(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockClientStorage) RemoveItem(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockLabRepository is a mock for ResultRepository, OrderRepository and DeviceRepository
type MockLabRepository struct {
	mock.Mock
}

func (m *MockLabRepository) GetResult(ctx context.Context, id int64) (*domain.LabResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LabResult), args.Error(1)
}

func (m *MockLabRepository) ListOrdersByPatient(ctx context.Context, patientID string, limit int) ([]domain.TestOrder, error) {
	args := m.Called(ctx, patientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TestOrder), args.Error(1)
}

func (m *MockLabRepository) GetDevice(ctx context.Context, id int64) (*domain.Device, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Device), args.Error(1)
}

func (m *MockLabRepository) ListDevices(ctx context.Context, limit, offset int) ([]domain.Device, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Device), args.Error(1)
}

func (m *MockLabRepository) CountDevices(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockTranscriptRepository is a mock for TranscriptRepository
type MockTranscriptRepository struct {
	mock.Mock
}

func (m *MockTranscriptRepository) SaveMessage(ctx context.Context, entry domain.TranscriptEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTranscriptRepository) CleanOldMessages(ctx context.Context, days int) error {
	args := m.Called(ctx, days)
	return args.Error(0)
}
