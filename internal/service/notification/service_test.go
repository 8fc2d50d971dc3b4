package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/internal/repository/memory"
	"github.com/jwalitptl/hospital-api/pkg/logger"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	f.sent = append(f.sent, sentMail{to, subject, body})
	return f.err
}

type brokenDoctors struct {
	repository.DoctorRepository
}

func (brokenDoctors) GetEmail(context.Context, int64) (string, error) {
	return "", errors.New("connection reset")
}

func setup(t *testing.T) (*memory.Store, int64) {
	t.Helper()
	store := memory.NewStore()
	doc := &model.Doctor{Name: "Dr. Strange", Department: "Neurology", Email: "strange@example.com"}
	require.NoError(t, store.Doctors().Create(context.Background(), doc))
	return store, doc.ID
}

func TestNotifyDoctorSends(t *testing.T) {
	store, id := setup(t)
	mailer := &fakeMailer{}
	m := metrics.NewNop()
	svc := NewService(store.Doctors(), mailer, logger.Nop(), m)

	res := svc.NotifyDoctor(context.Background(), id)

	assert.Equal(t, model.NotificationResult{Outcome: model.NotificationSent, Recipient: "strange@example.com"}, res)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, sentMail{"strange@example.com", NewAppointmentSubject, NewAppointmentBody}, mailer.sent[0])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("sent")))
}

func TestNotifyDoctorUnknownDoctorSendsNothing(t *testing.T) {
	store, _ := setup(t)
	mailer := &fakeMailer{}
	svc := NewService(store.Doctors(), mailer, logger.Nop(), metrics.NewNop())

	res := svc.NotifyDoctor(context.Background(), 999)

	assert.Equal(t, model.NotificationSkipped, res.Outcome)
	assert.Empty(t, res.Error)
	assert.Empty(t, mailer.sent)
}

func TestNotifyDoctorTransportFailure(t *testing.T) {
	store, id := setup(t)
	mailer := &fakeMailer{err: errors.New("535 authentication failed")}
	m := metrics.NewNop()
	svc := NewService(store.Doctors(), mailer, logger.Nop(), m)

	res := svc.NotifyDoctor(context.Background(), id)

	assert.True(t, res.Failed())
	assert.Equal(t, "strange@example.com", res.Recipient)
	assert.Contains(t, res.Error, "535 authentication failed")
	assert.Len(t, mailer.sent, 1, "exactly one attempt")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("failed")))
}

func TestNotifyDoctorLookupFailure(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewService(brokenDoctors{}, mailer, logger.Nop(), metrics.NewNop())

	res := svc.NotifyDoctor(context.Background(), 1)

	assert.True(t, res.Failed())
	assert.Contains(t, res.Error, "connection reset")
	assert.Empty(t, mailer.sent)
}
