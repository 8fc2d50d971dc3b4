package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/hospital-api/internal/config"
	"github.com/jwalitptl/hospital-api/internal/email"
	appointmenthandler "github.com/jwalitptl/hospital-api/internal/handler/appointment"
	authhandler "github.com/jwalitptl/hospital-api/internal/handler/auth"
	dashboardhandler "github.com/jwalitptl/hospital-api/internal/handler/dashboard"
	doctorhandler "github.com/jwalitptl/hospital-api/internal/handler/doctor"
	healthhandler "github.com/jwalitptl/hospital-api/internal/handler/health"
	prometheushandler "github.com/jwalitptl/hospital-api/internal/handler/prometheus"
	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/internal/repository/memory"
	"github.com/jwalitptl/hospital-api/internal/repository/postgres"
	"github.com/jwalitptl/hospital-api/internal/router"
	appointmentservice "github.com/jwalitptl/hospital-api/internal/service/appointment"
	authservice "github.com/jwalitptl/hospital-api/internal/service/auth"
	dashboardservice "github.com/jwalitptl/hospital-api/internal/service/dashboard"
	"github.com/jwalitptl/hospital-api/internal/service/notification"
	"github.com/jwalitptl/hospital-api/pkg/logger"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
	"github.com/jwalitptl/hospital-api/pkg/messaging/redis"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
	"github.com/jwalitptl/hospital-api/pkg/security"
)

type repositories struct {
	admins       repository.AdminRepository
	doctors      repository.DoctorRepository
	appointments repository.AppointmentRepository
	// db is nil for the in-memory store.
	db healthhandler.Pinger
}

func serveCmd(configPath *string) *cobra.Command {
	var inMemory bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return runServer(cfg, log, inMemory)
		},
	}
	cmd.Flags().BoolVar(&inMemory, "in-memory", false, "Keep data in process memory instead of PostgreSQL")
	return cmd
}

func runServer(cfg *config.Config, log *logger.Logger, inMemory bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hasher := security.NewBcryptHasher(cfg.Admin.BcryptCost)

	var repos repositories
	if inMemory {
		store := memory.NewStore()
		if _, err := store.SeedAdmin(hasher, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			return fmt.Errorf("failed to seed admin: %w", err)
		}
		repos = repositories{admins: store.Admins(), doctors: store.Doctors(), appointments: store.Appointments()}
		log.Warn("using in-memory store, data is lost on exit")
	} else {
		db, err := openDatabase(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer db.Close()
		repos = repositories{
			admins:       postgres.NewAdminRepository(db),
			doctors:      postgres.NewDoctorRepository(db),
			appointments: postgres.NewAppointmentRepository(db),
			db:           db,
		}
		log.Info("connected to database", "host", cfg.Database.Host, "name", cfg.Database.Name)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg, "hospital")

	broker := newBroker(ctx, cfg.Redis, log)
	defer broker.Close()

	mailer := newMailer(cfg.Mail, log)
	notifier := notification.NewService(repos.doctors, mailer, log, m)
	appointmentSvc := appointmentservice.NewService(repos.appointments, notifier, broker, cfg.Redis.Channel, log, m)
	authSvc := authservice.NewService(repos.admins, hasher, log, m)
	dashboardSvc := dashboardservice.NewService(repos.doctors, repos.appointments)

	r := router.NewRouter(log, m, router.Handlers{
		Auth:        authhandler.NewHandler(authSvc),
		Appointment: appointmenthandler.NewHandler(appointmentSvc),
		Dashboard:   dashboardhandler.NewHandler(dashboardSvc),
		Doctor:      doctorhandler.NewHandler(appointmentSvc),
		Health:      healthhandler.NewHandler(repos.db),
		Metrics:     prometheushandler.New(reg),
	}, router.RouterConfig{
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimit: middleware.RateLimiterConfig{
			RPS:       cfg.RateLimit.RequestsPerSecond,
			Burst:     cfg.RateLimit.Burst,
			ClientTTL: cfg.RateLimit.ClientTTL,
		},
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MaxBodySize:    cfg.Server.MaxBodyBytes,
	}).Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server exited properly")
	return nil
}

// newBroker connects to Redis when configured. Events are informational, so
// an unreachable Redis downgrades to a no-op broker instead of failing.
func newBroker(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) messaging.Broker {
	if cfg.URL == "" {
		return messaging.NopBroker{}
	}

	broker, err := redis.NewBroker(ctx, redis.Config{
		URL:          cfg.URL,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	}, log.Zerolog())
	if err != nil {
		log.Error(err, "redis unavailable, events will not be published")
		return messaging.NopBroker{}
	}

	log.Info("publishing events to redis", "channel", cfg.Channel)
	return broker
}

func newMailer(cfg config.MailConfig, log *logger.Logger) email.Service {
	if !cfg.Enabled() {
		log.Warn("mail.host not set, doctor notifications will only be logged")
		return email.NewLogService(log)
	}
	return email.NewSMTPService(cfg)
}
