package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwalitptl/hospital-api/internal/email"
	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/logger"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

const (
	NewAppointmentSubject = "New Appointment Request"
	NewAppointmentBody    = "You have a new appointment request.\n\n" +
		"Please login to the system to confirm or reject."
)

// Dispatcher tells a doctor about a new booking.
type Dispatcher interface {
	// NotifyDoctor makes exactly one delivery attempt. It never returns an
	// error; failures are logged, counted and reported in the result.
	NotifyDoctor(ctx context.Context, doctorID int64) model.NotificationResult
}

type service struct {
	doctors  repository.DoctorRepository
	emailSvc email.Service
	log      *logger.Logger
	metrics  *metrics.Metrics
}

func NewService(doctors repository.DoctorRepository, emailSvc email.Service, log *logger.Logger, m *metrics.Metrics) Dispatcher {
	return &service{
		doctors:  doctors,
		emailSvc: emailSvc,
		log:      log,
		metrics:  m,
	}
}

func (s *service) NotifyDoctor(ctx context.Context, doctorID int64) model.NotificationResult {
	result := s.notify(ctx, doctorID)
	s.metrics.Notifications.WithLabelValues(string(result.Outcome)).Inc()
	return result
}

func (s *service) notify(ctx context.Context, doctorID int64) model.NotificationResult {
	to, err := s.doctors.GetEmail(ctx, doctorID)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Debug("no doctor to notify", "doctor_id", doctorID)
		return model.NotificationResult{Outcome: model.NotificationSkipped}
	}
	if err != nil {
		return s.failed(doctorID, "", fmt.Errorf("failed to look up doctor: %w", err))
	}

	if err := s.emailSvc.Send(ctx, to, NewAppointmentSubject, NewAppointmentBody); err != nil {
		return s.failed(doctorID, to, err)
	}

	s.log.Info("doctor notified", "doctor_id", doctorID, "to", to)
	return model.NotificationResult{Outcome: model.NotificationSent, Recipient: to}
}

func (s *service) failed(doctorID int64, to string, err error) model.NotificationResult {
	s.log.Error(err, "doctor notification failed", "doctor_id", doctorID, "to", to)
	return model.NotificationResult{
		Outcome:   model.NotificationFailed,
		Recipient: to,
		Error:     err.Error(),
	}
}
