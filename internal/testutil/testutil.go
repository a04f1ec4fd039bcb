package testutil

import (
	"context"
	"sync"
	"time"

	"labportal/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestAccount creates a test account whose password is password
func NewTestAccount(username, password string, role domain.Role) *domain.Account {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	account := &domain.Account{
		ID:           "acc-" + username,
		Username:     username,
		FullName:     "Test " + username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if role == domain.RolePatient {
		account.PatientID = "pat-" + username
	}
	return account
}

// NewTestResult creates a test result with one high glucose observation
func NewTestResult(id int64, patientID string) *domain.LabResult {
	return &domain.LabResult{
		ID:        id,
		OrderID:   id,
		PatientID: patientID,
		TestName:  "Glucose",
		RawHL7: "MSH|^~\\&|LIS|LAB|PORTAL|HOSP|20240501083000||ORU^R01|MSG1|P|2.5.1\r" +
			"OBX|1|NM|GLU^Glucose||7.8|mmol/L|3.9-6.4|H|||F\r" +
			"OBX|2|NM|NA^Sodium||140|mmol/L|135-145|N|||F",
		CreatedAt: time.Now(),
	}
}

// MemoryStorage is an in-process session.Storage
type MemoryStorage struct {
	mu      sync.Mutex
	items   map[string][]byte
	getErr  error
	removed []string
}

// NewMemoryStorage creates an empty storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string][]byte)}
}

func (s *MemoryStorage) GetItem(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.items[key], nil
}

func (s *MemoryStorage) SetItem(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *MemoryStorage) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	s.removed = append(s.removed, key)
	return nil
}

// Put stores value under key without going through SetItem
func (s *MemoryStorage) Put(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

// Get returns the stored value of key
func (s *MemoryStorage) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok
}

// Has reports whether key is stored
func (s *MemoryStorage) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// FailGets makes every GetItem return err; nil restores normal reads
func (s *MemoryStorage) FailGets(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getErr = err
}

// Removed lists the keys passed to RemoveItem, in order
func (s *MemoryStorage) Removed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.removed...)
}
