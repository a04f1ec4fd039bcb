package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"labportal/internal/domain"
	"labportal/internal/session"
	"labportal/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestAuthService_CheckCredentials(t *testing.T) {
	account := testutil.NewTestAccount("bs.lan", "secret123", domain.RoleDoctor)

	tests := []struct {
		name          string
		username      string
		password      string
		mockAccount   *domain.Account
		mockError     error
		callsRepo     bool
		expectedError error
	}{
		{name: "correct password", username: "bs.lan", password: "secret123", mockAccount: account, callsRepo: true},
		{name: "wrong password", username: "bs.lan", password: "wrong", mockAccount: account, callsRepo: true, expectedError: ErrInvalidCredentials},
		{name: "case sensitive", username: "bs.lan", password: "Secret123", mockAccount: account, callsRepo: true, expectedError: ErrInvalidCredentials},
		{name: "unknown user", username: "bs.lan", password: "secret123", callsRepo: true, expectedError: ErrInvalidCredentials},
		{name: "empty password", username: "bs.lan", password: "", expectedError: ErrInvalidCredentials},
		{name: "empty username", username: "  ", password: "secret123", expectedError: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockAccountRepository)
			if tt.callsRepo {
				mockRepo.On("GetByUsername", mock.Anything, tt.username).Return(tt.mockAccount, tt.mockError)
			}
			svc := NewAuthService(mockRepo, session.NewManager(testutil.NewMemoryStorage(), "persist:auth", nil), testutil.NewTestLogger())

			got, err := svc.CheckCredentials(testContext(t), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, account, got)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_CheckCredentials_RepositoryError(t *testing.T) {
	mockRepo := new(testutil.MockAccountRepository)
	mockRepo.On("GetByUsername", mock.Anything, "x").Return(nil, errors.New("db error"))

	svc := NewAuthService(mockRepo, session.NewManager(testutil.NewMemoryStorage(), "persist:auth", nil), testutil.NewTestLogger())

	_, err := svc.CheckCredentials(testContext(t), "x", "y")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginLogout(t *testing.T) {
	storage := testutil.NewMemoryStorage()
	sessions := session.NewManager(storage, "persist:auth", nil)
	account := testutil.NewTestAccount("bn.an", "pw", domain.RolePatient)

	mockRepo := new(testutil.MockAccountRepository)
	mockRepo.On("GetByUsername", mock.Anything, "bn.an").Return(account, nil)

	svc := NewAuthService(mockRepo, sessions, testutil.NewTestLogger())
	ctx := testContext(t)

	state, err := svc.Session(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, session.StatusAnonymous, state.Status)

	profile, err := svc.Login(ctx, 42, "bn.an", "pw")
	require.NoError(t, err)
	assert.Equal(t, domain.RolePatient, profile.Role)
	assert.Equal(t, "pat-bn.an", profile.PatientID)

	state, err = svc.Session(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, session.StatusAuthenticated, state.Status)
	assert.True(t, storage.Has("persist:auth:42"))

	require.NoError(t, svc.Logout(ctx, 42))

	state, err = svc.Session(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, session.StatusAnonymous, state.Status)
	assert.False(t, storage.Has("persist:auth:42"))
}

func TestAuthService_Login_WrongPasswordKeepsAnonymous(t *testing.T) {
	sessions := session.NewManager(testutil.NewMemoryStorage(), "persist:auth", nil)
	account := testutil.NewTestAccount("bn.an", "pw", domain.RolePatient)

	mockRepo := new(testutil.MockAccountRepository)
	mockRepo.On("GetByUsername", mock.Anything, "bn.an").Return(account, nil)

	svc := NewAuthService(mockRepo, sessions, testutil.NewTestLogger())
	ctx := testContext(t)

	_, err := svc.Login(ctx, 42, "bn.an", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	state, err := svc.Session(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, session.StatusAnonymous, state.Status)
}

func TestAuthService_Login_PersistFailureIsNotFatal(t *testing.T) {
	storage := new(testutil.MockClientStorage)
	storage.On("GetItem", mock.Anything, "persist:auth:1").Return(nil, nil)
	storage.On("RemoveItem", mock.Anything, "persist:auth:1").Return(nil)
	storage.On("SetItem", mock.Anything, "persist:auth:1", mock.Anything).Return(errors.New("disk full"))

	account := testutil.NewTestAccount("nv.binh", "pw", domain.RoleStaff)
	mockRepo := new(testutil.MockAccountRepository)
	mockRepo.On("GetByUsername", mock.Anything, "nv.binh").Return(account, nil)

	svc := NewAuthService(mockRepo, session.NewManager(storage, "persist:auth", nil), testutil.NewTestLogger())
	ctx := testContext(t)

	_, err := svc.Login(ctx, 1, "nv.binh", "pw")
	require.NoError(t, err)

	state, err := svc.Session(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, session.StatusAuthenticated, state.Status)
	storage.AssertExpectations(t)
}
