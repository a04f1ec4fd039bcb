package postgres

import (
	"context"
	"database/sql"

	"labportal/internal/domain"
)

// LabRepo implements repository.ResultRepository, repository.OrderRepository
// and repository.DeviceRepository
type LabRepo struct {
	db *sql.DB
}

// NewLabRepo creates a new laboratory repository
func NewLabRepo(db *sql.DB) *LabRepo {
	return &LabRepo{db: db}
}

// GetResult returns a stored HL7 result
func (r *LabRepo) GetResult(ctx context.Context, id int64) (*domain.LabResult, error) {
	var res domain.LabResult
	query := `
		SELECT id, order_id, patient_id, test_name, raw_hl7, created_at
		FROM lab_results
		WHERE id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&res.ID, &res.OrderID, &res.PatientID, &res.TestName, &res.RawHL7, &res.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ListOrdersByPatient returns the newest orders of a patient with their result ids
func (r *LabRepo) ListOrdersByPatient(ctx context.Context, patientID string, limit int) ([]domain.TestOrder, error) {
	query := `
		SELECT o.id, o.patient_id, o.test_name, o.status, COALESCE(r.id, 0), o.created_at
		FROM test_orders o
		LEFT JOIN lab_results r ON r.order_id = o.id
		WHERE o.patient_id = $1
		ORDER BY o.created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, patientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.TestOrder
	for rows.Next() {
		var o domain.TestOrder
		if err := rows.Scan(&o.ID, &o.PatientID, &o.TestName, &o.Status, &o.ResultID, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

// GetDevice returns one instrument
func (r *LabRepo) GetDevice(ctx context.Context, id int64) (*domain.Device, error) {
	var d domain.Device
	query := `SELECT id, name, model, status, updated_at FROM devices WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Name, &d.Model, &d.Status, &d.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDevices returns a page of instruments ordered by name
func (r *LabRepo) ListDevices(ctx context.Context, limit, offset int) ([]domain.Device, error) {
	query := `
		SELECT id, name, model, status, updated_at
		FROM devices
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devices []domain.Device
	for rows.Next() {
		var d domain.Device
		if err := rows.Scan(&d.ID, &d.Name, &d.Model, &d.Status, &d.UpdatedAt); err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}

	return devices, rows.Err()
}

// CountDevices returns the number of instruments
func (r *LabRepo) CountDevices(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM devices`).Scan(&count)
	return count, err
}
