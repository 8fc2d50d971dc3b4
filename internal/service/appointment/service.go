package appointment

import (
	"context"
	"time"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/internal/service/notification"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/logger"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
	"github.com/jwalitptl/hospital-api/pkg/validator"
)

// Booking validation errors, surfaced verbatim to the caller.
var (
	ErrInvalidDateFormat = apperrors.BadRequest("Invalid date format", nil)
	ErrSundayUnavailable = apperrors.BadRequest("Appointments not available on Sunday", nil)
)

const (
	EventBooked        = "appointment.booked"
	EventStatusChanged = "appointment.status_changed"
)

type Service struct {
	repo      repository.AppointmentRepository
	notifier  notification.Dispatcher
	broker    messaging.Broker
	channel   string
	validator validator.Validator
	log       *logger.Logger
	metrics   *metrics.Metrics
}

func NewService(
	repo repository.AppointmentRepository,
	notifier notification.Dispatcher,
	broker messaging.Broker,
	channel string,
	log *logger.Logger,
	m *metrics.Metrics,
) *Service {
	if broker == nil {
		broker = messaging.NopBroker{}
	}
	return &Service{
		repo:      repo,
		notifier:  notifier,
		broker:    broker,
		channel:   channel,
		validator: validator.New(),
		log:       log,
		metrics:   m,
	}
}

// ValidateDate parses a YYYY-MM-DD date and rejects Sundays.
func ValidateDate(date string) (time.Time, error) {
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	if d.Weekday() == time.Sunday {
		return time.Time{}, ErrSundayUnavailable
	}
	return d, nil
}

// Book records a Pending appointment and then notifies the doctor. The
// insert is committed before the notification is attempted, and the
// notification outcome never turns a recorded booking into an error.
func (s *Service) Book(ctx context.Context, req *model.BookAppointmentRequest) (*model.BookingResult, error) {
	if _, err := ValidateDate(req.Date); err != nil {
		s.metrics.Bookings.WithLabelValues("rejected").Inc()
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		s.metrics.Bookings.WithLabelValues("rejected").Inc()
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	apt := &model.Appointment{
		PatientName: req.Name,
		Email:       req.Email,
		DoctorID:    int64(req.DoctorID),
		Date:        req.Date,
		Time:        req.Time,
		Status:      model.AppointmentStatusPending,
	}
	if err := s.repo.Create(ctx, apt); err != nil {
		s.metrics.Bookings.WithLabelValues("error").Inc()
		return nil, apperrors.Internal(err)
	}
	s.metrics.Bookings.WithLabelValues("booked").Inc()

	// The row is committed; a client disconnect must not abort the email.
	detached := context.WithoutCancel(ctx)

	result := &model.BookingResult{
		Appointment:  apt,
		Notification: s.notifier.NotifyDoctor(detached, apt.DoctorID),
	}
	if result.Notification.Failed() {
		s.log.Warn("booking persisted, notification failed",
			"appointment_id", apt.ID,
			"doctor_id", apt.DoctorID,
			"error", result.Notification.Error,
		)
	}

	s.publish(detached, EventBooked, apt)
	return result, nil
}

// Confirm sets the status to Confirmed regardless of the current status.
func (s *Service) Confirm(ctx context.Context, id int64) error {
	return s.setStatus(ctx, id, model.AppointmentStatusConfirmed)
}

// Reject sets the status to Rejected regardless of the current status.
func (s *Service) Reject(ctx context.Context, id int64) error {
	return s.setStatus(ctx, id, model.AppointmentStatusRejected)
}

func (s *Service) setStatus(ctx context.Context, id int64, status model.AppointmentStatus) error {
	rows, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return apperrors.Internal(err)
	}

	change := model.StatusChange{AppointmentID: id, Status: status, RowsAffected: rows}
	if rows == 0 {
		s.log.Debug("status update matched no appointment", "change", change.String())
	}
	s.metrics.StatusUpdates.WithLabelValues(string(status)).Inc()

	s.publish(context.WithoutCancel(ctx), EventStatusChanged, change)
	return nil
}

func (s *Service) publish(ctx context.Context, eventType string, payload interface{}) {
	if err := s.broker.Publish(ctx, s.channel, messaging.NewEvent(eventType, payload)); err != nil {
		s.metrics.EventsPublished.WithLabelValues(eventType, "error").Inc()
		s.log.Error(err, "failed to publish event", "event_type", eventType)
		return
	}
	s.metrics.EventsPublished.WithLabelValues(eventType, "ok").Inc()
}
