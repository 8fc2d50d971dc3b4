package auth

import (
	"context"
	"errors"

	"github.com/jwalitptl/hospital-api/internal/repository"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/logger"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
	"github.com/jwalitptl/hospital-api/pkg/security"
)

var ErrInvalidCredentials = apperrors.Unauthorized("Invalid credentials", nil)

type Service struct {
	admins  repository.AdminRepository
	hasher  security.PasswordHasher
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewService(admins repository.AdminRepository, hasher security.PasswordHasher, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		admins:  admins,
		hasher:  hasher,
		log:     log,
		metrics: m,
	}
}

// Login checks the admin's password against the stored bcrypt hash. No
// session or token is issued.
func (s *Service) Login(ctx context.Context, username, password string) error {
	admin, err := s.admins.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		s.metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return ErrInvalidCredentials
	}
	if err != nil {
		s.metrics.LoginAttempts.WithLabelValues("error").Inc()
		return apperrors.Internal(err)
	}

	if err := s.hasher.Compare(admin.PasswordHash, password); err != nil {
		s.metrics.LoginAttempts.WithLabelValues("failure").Inc()
		s.log.Warn("admin login rejected", "username", username)
		return ErrInvalidCredentials
	}

	s.metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.log.Info("admin logged in", "username", username)
	return nil
}
