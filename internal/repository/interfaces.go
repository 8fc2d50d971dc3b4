package repository

import (
	"context"
	"errors"

	"github.com/jwalitptl/hospital-api/internal/model"
)

// ErrNotFound is returned by single-row lookups that match nothing.
var ErrNotFound = errors.New("record not found")

// All repository interfaces in one file
type (
	AdminRepository interface {
		GetByUsername(ctx context.Context, username string) (*model.Admin, error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		GetEmail(ctx context.Context, id int64) (string, error)
		Count(ctx context.Context) (int64, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		// UpdateStatus overwrites the status unconditionally and reports how
		// many rows matched. A missing id is not an error.
		UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) (int64, error)
		Count(ctx context.Context) (int64, error)
		CountByStatus(ctx context.Context, status model.AppointmentStatus) (int64, error)
		// ListWithDoctor returns every appointment joined with its doctor's
		// name, newest date first by string comparison.
		ListWithDoctor(ctx context.Context) ([]*model.AppointmentListing, error)
	}
)
