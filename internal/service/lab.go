package service

import (
	"context"
	"fmt"

	"labportal/internal/domain"
	"labportal/internal/hl7"
	"labportal/internal/labels"
	"labportal/internal/repository"
)

const (
	devicePageSize = 7
	ordersLimit    = 10
)

// ObservationView is an observation with its display tuple
type ObservationView struct {
	domain.Observation
	Flag   labels.Resolved
	Status labels.Resolved
}

// ResultView is a lab result ready for display
type ResultView struct {
	Result       domain.LabResult
	Observations []ObservationView
}

// LabService handles results, orders and instruments
type LabService struct {
	results repository.ResultRepository
	orders  repository.OrderRepository
	devices repository.DeviceRepository
}

// NewLabService creates a new lab service
func NewLabService(results repository.ResultRepository, orders repository.OrderRepository, devices repository.DeviceRepository) *LabService {
	return &LabService{
		results: results,
		orders:  orders,
		devices: devices,
	}
}

// GetResult returns a result visible to viewer. Patients only see their own.
func (s *LabService) GetResult(ctx context.Context, viewer domain.Profile, resultID int64) (*ResultView, error) {
	result, err := s.results.GetResult(ctx, resultID)
	if err != nil {
		return nil, fmt.Errorf("failed to load result: %w", err)
	}
	if result == nil {
		return nil, ErrNotFound
	}
	if viewer.Role == domain.RolePatient && viewer.PatientID != result.PatientID {
		return nil, ErrNotFound
	}

	msg, err := hl7.Parse(result.RawHL7)
	if err != nil {
		return nil, fmt.Errorf("failed to parse result %d: %w", result.ID, err)
	}

	view := &ResultView{Result: *result}
	for _, obs := range msg.Observations() {
		view.Observations = append(view.Observations, ObservationView{
			Observation: obs,
			Flag:        labels.Flags.Resolve(obs.Flag),
			Status:      labels.ResultStatuses.Resolve(obs.Status),
		})
	}
	return view, nil
}

// GetOrders returns the newest orders of a patient
func (s *LabService) GetOrders(ctx context.Context, patientID string) ([]domain.TestOrder, error) {
	if patientID == "" {
		return nil, ErrNotFound
	}
	return s.orders.ListOrdersByPatient(ctx, patientID, ordersLimit)
}

// GetDevice returns one instrument
func (s *LabService) GetDevice(ctx context.Context, deviceID int64) (*domain.Device, error) {
	device, err := s.devices.GetDevice(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load device: %w", err)
	}
	if device == nil {
		return nil, ErrNotFound
	}
	return device, nil
}

// GetDevicesPage returns paginated list of instruments
func (s *LabService) GetDevicesPage(ctx context.Context, page int) ([]domain.Device, int, error) {
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * devicePageSize
	devices, err := s.devices.ListDevices(ctx, devicePageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.devices.CountDevices(ctx)
	if err != nil {
		return nil, 0, err
	}

	totalPages := (total + devicePageSize - 1) / devicePageSize
	if totalPages == 0 {
		totalPages = 1
	}

	return devices, totalPages, nil
}
