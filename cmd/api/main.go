package main

import (
	"context"
	"errors"
	stdlog "log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prodib01/BAYLOR-CDC/internal/app"
	"github.com/prodib01/BAYLOR-CDC/internal/clock"
	"github.com/prodib01/BAYLOR-CDC/internal/config"
	"github.com/prodib01/BAYLOR-CDC/internal/logger"
	"github.com/prodib01/BAYLOR-CDC/internal/metrics"
	"github.com/prodib01/BAYLOR-CDC/internal/storage"
	transporthttp "github.com/prodib01/BAYLOR-CDC/internal/transport/http"
)

const (
	startupTimeout    = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewLogger("info").Error("load config", "error", err)
		os.Exit(1)
	}
	log := logger.NewLogger(cfg.Logging.Level)
	if cfg.EnvFile != "" {
		log.Info("loaded env file", "path", cfg.EnvFile)
	}
	for _, name := range cfg.Defaulted {
		log.Warn("variable not set, using default", "name", name)
	}

	if err := run(cfg, log); err != nil {
		log.Error("api stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	backend, err := storage.Open(startupCtx, cfg.Storage, log)
	if err != nil {
		return err
	}
	defer backend.Close()

	clk := clock.NewSystem()
	m := metrics.New()
	auth := app.NewAuthService(backend, app.BcryptHasher{Cost: cfg.Auth.BcryptCost}, clk)
	if err := bootstrapAdmin(startupCtx, auth, cfg.Auth, log); err != nil {
		return err
	}

	router := transporthttp.NewRouter(transporthttp.Services{
		Facilitators: app.NewFacilitatorService(backend, clk),
		Events:       app.NewEventService(backend, clk),
		AgeGroups:    app.NewAgeGroupService(backend, clk),
		Participants: app.NewParticipantService(backend, clk),
		Materials:    app.NewMaterialService(backend, clk),
		Allocations:  app.NewAllocationService(backend, clk, app.WithAllocationRecorder(m)),
		Attendances:  app.NewAttendanceService(backend, clk),
		Projector:    app.NewProjector(backend),
		Auth:         auth,
	},
		transporthttp.WithLogger(log),
		transporthttp.WithMetrics(m),
		transporthttp.WithHealthCheck(backend),
	)
	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.Server.CORSOrigins, router), log)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slogErrorLog(log),
	}

	log.Info("api listening", "addr", server.Addr, "storage", backend.Driver)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-stopCtx.Done():
		log.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server shutdown error", "error", err)
	}
	log.Info("server stopped")
	return nil
}

// bootstrapAdmin creates the configured operator account if it is missing.
func bootstrapAdmin(ctx context.Context, auth *app.AuthService, cfg config.AuthConfig, log *logger.Logger) error {
	if cfg.AdminUsername == "" {
		return nil
	}
	_, created, err := auth.EnsureUser(ctx, app.CreateUserInput{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
	})
	if err != nil {
		return err
	}
	if created {
		log.Info("created admin user", "username", cfg.AdminUsername)
	}
	return nil
}

// slogErrorLog routes net/http server errors through the structured logger.
func slogErrorLog(log *logger.Logger) *stdlog.Logger {
	return slog.NewLogLogger(log.Slog().Handler(), slog.LevelError)
}
