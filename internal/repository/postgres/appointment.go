package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/hospital-api/internal/model"
)

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			patient_name, email, doctor_id, date, time, status
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	if appointment.Status == "" {
		appointment.Status = model.AppointmentStatusPending
	}

	err := r.db.QueryRowxContext(ctx, query,
		appointment.PatientName,
		appointment.Email,
		appointment.DoctorID,
		appointment.Date,
		appointment.Time,
		appointment.Status,
	).Scan(&appointment.ID)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) (int64, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE appointments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

func (r *appointmentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM appointments`); err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return n, nil
}

func (r *appointmentRepository) CountByStatus(ctx context.Context, status model.AppointmentStatus) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM appointments WHERE status = $1`, status); err != nil {
		return 0, fmt.Errorf("failed to count %s appointments: %w", status, err)
	}
	return n, nil
}

// ListWithDoctor sorts on the raw date text in byte order (COLLATE "C"), so
// the result is chronological only while every date is zero-padded YYYY-MM-DD.
func (r *appointmentRepository) ListWithDoctor(ctx context.Context) ([]*model.AppointmentListing, error) {
	query := `
		SELECT a.id, a.patient_name, d.name AS doctor, a.date, a.time, a.status
		FROM appointments a
		LEFT JOIN doctors d ON a.doctor_id = d.id
		ORDER BY a.date COLLATE "C" DESC
	`
	appointments := []*model.AppointmentListing{}
	if err := r.db.SelectContext(ctx, &appointments, query); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
