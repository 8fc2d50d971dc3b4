package email

import (
	"context"

	"github.com/jwalitptl/hospital-api/pkg/logger"
)

// Service delivers a single plain-text message.
type Service interface {
	Send(ctx context.Context, to string, subject string, body string) error
}

type logService struct {
	log *logger.Logger
}

// NewLogService returns a Service that only logs messages. It stands in for
// SMTP when no mail host is configured.
func NewLogService(log *logger.Logger) Service {
	return &logService{log: log}
}

func (s *logService) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.log.Info("email not sent, no mail host configured", "to", to, "subject", subject, "bytes", len(body))
	return nil
}
