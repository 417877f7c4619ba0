package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadapi/internal/config"
	"leadapi/internal/mailer"
	"leadapi/internal/observability/logging"
	"leadapi/internal/observability/metrics"
	impl "leadapi/internal/service/impl"
	"leadapi/internal/store"
	httpx "leadapi/internal/transport/http"
	"leadapi/internal/turnstile"
	"leadapi/pkg/db"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load .env file if it exists.
	_ = godotenv.Load()

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	logger := logging.NewLogger(logging.Config{
		ServiceName: "leadapi",
		Environment: env,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	slog.SetDefault(logger)

	logger.Info("starting service")

	cfg := config.Load()
	metrics.MustRegister("leadapi")

	gdb, err := db.OpenGorm(db.Config{Driver: cfg.DBDriver, DSN: cfg.DatabaseURL, LogSQL: cfg.LogSQL})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		logger.Error("migrate", "error", err)
		os.Exit(1)
	}

	st := store.New(gdb, cfg.DefaultEmail)

	verifier := turnstile.New(cfg.TurnstileSecret, cfg.TurnstileURL)
	if !verifier.Enabled() {
		// Intentional for development; never run production without a secret.
		logger.Warn("TURNSTILE_SECRET not set, bot verification is disabled (fail-open)")
	}

	dispatcher := mailer.NewDispatcher(selectProvider(cfg, logger), cfg.MailFrom)

	pw := impl.NewPasswordServiceArgon2id()
	tokens := impl.NewTokenServiceHS256(impl.TokenConfig{
		Issuer:     cfg.Issuer,
		SigningKey: []byte(cfg.SigningKey),
	})
	auth := impl.NewAuthServiceImpl(impl.AuthConfig{
		SuperuserUsername: cfg.SuperuserUsername,
		SuperuserPassword: cfg.SuperuserPassword,
		SessionTTL:        cfg.SessionTTL,
	}, st, pw, tokens, verifier)
	leads := impl.NewLeadServiceImpl(st, verifier, dispatcher)

	handler := httpx.NewRouter(httpx.Config{
		AllowedOrigins: cfg.CORSOrigins,
		SessionTTL:     cfg.SessionTTL,
		RateLimitRPM:   cfg.RateLimitRPM,
		TrustProxy:     cfg.TrustProxy,
	}, auth, leads, tokens, st)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "db_driver", cfg.DBDriver, "mail_provider", cfg.MailProvider)
		errc <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutdown signal received", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("stopped")
}

func selectProvider(cfg config.Config, logger *slog.Logger) mailer.Provider {
	switch cfg.MailProvider {
	case "resend":
		return mailer.NewResend(cfg.ResendAPIKey, cfg.ResendURL)
	case "smtp":
		return mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	case "none", "":
		return nil
	default:
		logger.Warn("unknown MAIL_PROVIDER, mail disabled", "provider", cfg.MailProvider)
		return nil
	}
}
