package dashboard

import (
	"context"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

type Service struct {
	doctors      repository.DoctorRepository
	appointments repository.AppointmentRepository
}

func NewService(doctors repository.DoctorRepository, appointments repository.AppointmentRepository) *Service {
	return &Service{doctors: doctors, appointments: appointments}
}

// Get returns the three headline counts and every appointment, newest date
// first. Each query runs on its own pooled connection.
func (s *Service) Get(ctx context.Context) (*model.Dashboard, error) {
	var (
		d   model.Dashboard
		err error
	)

	if d.Stats.DoctorCount, err = s.doctors.Count(ctx); err != nil {
		return nil, apperrors.Internal(err)
	}
	if d.Stats.AppointmentCount, err = s.appointments.Count(ctx); err != nil {
		return nil, apperrors.Internal(err)
	}
	if d.Stats.PendingCount, err = s.appointments.CountByStatus(ctx, model.AppointmentStatusPending); err != nil {
		return nil, apperrors.Internal(err)
	}
	if d.Appointments, err = s.appointments.ListWithDoctor(ctx); err != nil {
		return nil, apperrors.Internal(err)
	}
	if d.Appointments == nil {
		d.Appointments = []*model.AppointmentListing{}
	}

	return &d, nil
}
