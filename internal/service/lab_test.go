package service

import (
	"errors"
	"testing"

	"labportal/internal/domain"
	"labportal/internal/labels"
	"labportal/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLabService(repo *testutil.MockLabRepository) *LabService {
	return NewLabService(repo, repo, repo)
}

func TestLabService_GetResult(t *testing.T) {
	doctor := domain.Profile{ID: "d", Role: domain.RoleDoctor}
	owner := domain.Profile{ID: "p1", Role: domain.RolePatient, PatientID: "pat-1"}
	stranger := domain.Profile{ID: "p2", Role: domain.RolePatient, PatientID: "pat-2"}

	tests := []struct {
		name          string
		viewer        domain.Profile
		mockResult    *domain.LabResult
		mockError     error
		expectedError error
	}{
		{name: "doctor sees any result", viewer: doctor, mockResult: testutil.NewTestResult(5, "pat-1")},
		{name: "patient sees own result", viewer: owner, mockResult: testutil.NewTestResult(5, "pat-1")},
		{name: "patient cannot see others", viewer: stranger, mockResult: testutil.NewTestResult(5, "pat-1"), expectedError: ErrNotFound},
		{name: "missing result", viewer: doctor, expectedError: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockLabRepository)
			repo.On("GetResult", mock.Anything, int64(5)).Return(tt.mockResult, tt.mockError)

			view, err := newLabService(repo).GetResult(testContext(t), tt.viewer, 5)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, view)
				return
			}
			require.NoError(t, err)
			require.Len(t, view.Observations, 2)

			glucose := view.Observations[0]
			assert.Equal(t, "Glucose", glucose.Name)
			assert.Equal(t, labels.ColorDanger, glucose.Flag.Color)
			assert.Equal(t, "Cao", glucose.Flag.Label)
			assert.Equal(t, "Chính thức", glucose.Status.Label)
			assert.Equal(t, labels.ColorSuccess, view.Observations[1].Flag.Color)
			repo.AssertExpectations(t)
		})
	}
}

func TestLabService_GetResult_BadHL7(t *testing.T) {
	result := testutil.NewTestResult(5, "pat-1")
	result.RawHL7 = "garbage"

	repo := new(testutil.MockLabRepository)
	repo.On("GetResult", mock.Anything, int64(5)).Return(result, nil)

	view, err := newLabService(repo).GetResult(testContext(t), domain.Profile{Role: domain.RoleAdmin}, 5)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Nil(t, view)
}

func TestLabService_GetOrders(t *testing.T) {
	repo := new(testutil.MockLabRepository)
	orders := []domain.TestOrder{{ID: 1, PatientID: "pat-1", TestName: "Glucose", Status: "PENDING"}}
	repo.On("ListOrdersByPatient", mock.Anything, "pat-1", 10).Return(orders, nil)

	svc := newLabService(repo)

	got, err := svc.GetOrders(testContext(t), "pat-1")
	assert.NoError(t, err)
	assert.Equal(t, orders, got)

	_, err = svc.GetOrders(testContext(t), "")
	assert.ErrorIs(t, err, ErrNotFound)

	repo.AssertExpectations(t)
}

func TestLabService_GetDevice(t *testing.T) {
	repo := new(testutil.MockLabRepository)
	repo.On("GetDevice", mock.Anything, int64(1)).Return(&domain.Device{ID: 1, Status: "READY"}, nil)
	repo.On("GetDevice", mock.Anything, int64(2)).Return(nil, nil)
	repo.On("GetDevice", mock.Anything, int64(3)).Return(nil, errors.New("db error"))

	svc := newLabService(repo)

	device, err := svc.GetDevice(testContext(t), 1)
	assert.NoError(t, err)
	assert.Equal(t, "READY", device.Status)

	_, err = svc.GetDevice(testContext(t), 2)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetDevice(testContext(t), 3)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestLabService_GetDevicesPage(t *testing.T) {
	tests := []struct {
		name           string
		page           int
		expectedOffset int
		total          int
		expectedPages  int
	}{
		{name: "first page", page: 1, expectedOffset: 0, total: 15, expectedPages: 3},
		{name: "second page", page: 2, expectedOffset: 7, total: 14, expectedPages: 2},
		{name: "page below one", page: 0, expectedOffset: 0, total: 0, expectedPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockLabRepository)
			repo.On("ListDevices", mock.Anything, 7, tt.expectedOffset).Return([]domain.Device{}, nil)
			repo.On("CountDevices", mock.Anything).Return(tt.total, nil)

			_, pages, err := newLabService(repo).GetDevicesPage(testContext(t), tt.page)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedPages, pages)
			repo.AssertExpectations(t)
		})
	}
}

func TestLabService_GetDevicesPage_Error(t *testing.T) {
	repo := new(testutil.MockLabRepository)
	repo.On("ListDevices", mock.Anything, 7, 0).Return(nil, errors.New("db error"))

	devices, pages, err := newLabService(repo).GetDevicesPage(testContext(t), 1)

	assert.Error(t, err)
	assert.Nil(t, devices)
	assert.Equal(t, 0, pages)
}
