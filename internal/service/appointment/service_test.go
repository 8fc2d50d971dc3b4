package appointment

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/internal/repository/memory"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/logger"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

type fakeNotifier struct {
	calls  []int64
	result model.NotificationResult
}

func (f *fakeNotifier) NotifyDoctor(_ context.Context, doctorID int64) model.NotificationResult {
	f.calls = append(f.calls, doctorID)
	return f.result
}

type fakeBroker struct {
	events []messaging.Event
	err    error
}

func (b *fakeBroker) Publish(_ context.Context, _ string, message interface{}) error {
	b.events = append(b.events, message.(messaging.Event))
	return b.err
}

func (b *fakeBroker) Close() error { return nil }

type failingAppointments struct {
	repository.AppointmentRepository
}

func (failingAppointments) Create(context.Context, *model.Appointment) error {
	return errors.New("disk full")
}

type fixture struct {
	store    *memory.Store
	notifier *fakeNotifier
	broker   *fakeBroker
	metrics  *metrics.Metrics
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		store:    memory.NewStore(),
		notifier: &fakeNotifier{result: model.NotificationResult{Outcome: model.NotificationSent}},
		broker:   &fakeBroker{},
		metrics:  metrics.NewNop(),
	}
	f.svc = NewService(f.store.Appointments(), f.notifier, f.broker, "test", logger.Nop(), f.metrics)
	return f
}

func request(date string) *model.BookAppointmentRequest {
	return &model.BookAppointmentRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		DoctorID: 1,
		Date:     date,
		Time:     "10:30",
	}
}

func count(t *testing.T, f *fixture) int64 {
	t.Helper()
	n, err := f.store.Appointments().Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestBookAcceptsMondayThroughSaturday(t *testing.T) {
	for _, date := range []string{"2024-01-08", "2024-01-09", "2024-01-10", "2024-01-11", "2024-01-12", "2024-01-13"} {
		t.Run(date, func(t *testing.T) {
			f := newFixture()

			res, err := f.svc.Book(context.Background(), request(date))
			require.NoError(t, err)
			require.NotNil(t, res.Appointment)

			stored, ok := f.store.Appointment(res.Appointment.ID)
			require.True(t, ok)
			assert.Equal(t, model.AppointmentStatusPending, stored.Status)
			assert.Equal(t, date, stored.Date)
			assert.Equal(t, "Jane Doe", stored.PatientName)
			assert.Equal(t, []int64{1}, f.notifier.calls)
		})
	}
}

func TestBookRejectsSunday(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Book(context.Background(), request("2024-01-07"))

	assert.Same(t, ErrSundayUnavailable, err)
	assert.Equal(t, "Appointments not available on Sunday", err.Error())
	assert.Zero(t, count(t, f))
	assert.Empty(t, f.notifier.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Bookings.WithLabelValues("rejected")))
}

func TestBookRejectsBadDateFormat(t *testing.T) {
	for _, date := range []string{"07-01-2024", "2024/01/08", "2024-02-30", "2024-1-8", ""} {
		t.Run(date, func(t *testing.T) {
			f := newFixture()

			_, err := f.svc.Book(context.Background(), request(date))

			assert.Same(t, ErrInvalidDateFormat, err)
			assert.Zero(t, count(t, f))
		})
	}
}

func TestBookRequiresFields(t *testing.T) {
	f := newFixture()
	req := request("2024-01-08")
	req.Name = ""
	req.DoctorID = 0

	_, err := f.svc.Book(context.Background(), req)
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode())
	assert.Contains(t, appErr.Message, "name is required")
	assert.Zero(t, count(t, f))
}

func TestBookSucceedsWhenNotificationFails(t *testing.T) {
	f := newFixture()
	f.notifier.result = model.NotificationResult{Outcome: model.NotificationFailed, Error: "smtp down"}

	res, err := f.svc.Book(context.Background(), request("2024-01-08"))
	require.NoError(t, err)

	assert.True(t, res.Notification.Failed())
	_, ok := f.store.Appointment(res.Appointment.ID)
	assert.True(t, ok, "row must stay committed")
	assert.Equal(t, int64(1), count(t, f))
}

func TestBookSucceedsWhenPublishFails(t *testing.T) {
	f := newFixture()
	f.broker.err = errors.New("redis unavailable")

	res, err := f.svc.Book(context.Background(), request("2024-01-08"))
	require.NoError(t, err)
	assert.NotZero(t, res.Appointment.ID)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.EventsPublished.WithLabelValues(EventBooked, "error")))
}

func TestBookPublishesEvent(t *testing.T) {
	f := newFixture()

	res, err := f.svc.Book(context.Background(), request("2024-01-08"))
	require.NoError(t, err)

	require.Len(t, f.broker.events, 1)
	assert.Equal(t, EventBooked, f.broker.events[0].Type)
	assert.Equal(t, res.Appointment, f.broker.events[0].Payload)
}

func TestBookStorageFailure(t *testing.T) {
	f := newFixture()
	f.svc = NewService(failingAppointments{}, f.notifier, nil, "test", logger.Nop(), f.metrics)

	_, err := f.svc.Book(context.Background(), request("2024-01-08"))
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode())
	assert.Empty(t, f.notifier.calls)
}

func TestConfirmAndRejectOverwriteUnconditionally(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res, err := f.svc.Book(ctx, request("2024-01-08"))
	require.NoError(t, err)
	id := res.Appointment.ID

	status := func() model.AppointmentStatus {
		a, ok := f.store.Appointment(id)
		require.True(t, ok)
		return a.Status
	}

	require.NoError(t, f.svc.Confirm(ctx, id))
	assert.Equal(t, model.AppointmentStatusConfirmed, status())

	require.NoError(t, f.svc.Confirm(ctx, id))
	assert.Equal(t, model.AppointmentStatusConfirmed, status())

	require.NoError(t, f.svc.Reject(ctx, id))
	assert.Equal(t, model.AppointmentStatusRejected, status())

	require.NoError(t, f.svc.Confirm(ctx, id))
	assert.Equal(t, model.AppointmentStatusConfirmed, status())
}

func TestStatusChangeOnMissingAppointment(t *testing.T) {
	f := newFixture()

	assert.NoError(t, f.svc.Confirm(context.Background(), 404))
	assert.NoError(t, f.svc.Reject(context.Background(), 404))

	require.Len(t, f.broker.events, 2)
	change, ok := f.broker.events[0].Payload.(model.StatusChange)
	require.True(t, ok)
	assert.Zero(t, change.RowsAffected)
}
