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

	"staff_portal/internal/auth"
	"staff_portal/internal/config"
	"staff_portal/internal/directory"
	"staff_portal/internal/directory/placeholder"
	"staff_portal/internal/http_server/handlers/employees"
	"staff_portal/internal/http_server/router"
	sl "staff_portal/internal/lib/logger/sl"
	"staff_portal/internal/mailer"
	"staff_portal/internal/messaging"
	"staff_portal/internal/rabbitmq"
	"staff_portal/internal/storage/backend"

	"github.com/joho/godotenv"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad(config.Path())

	log := setupLogger(cfg.Env)

	log.Info("starting staff portal", slog.String("env", cfg.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Info("Shutdown signal received")
		cancel()
	}()

	store, closeStore, err := backend.Open(ctx, cfg.Storage)
	if err != nil {
		log.Error("failed to open storage", sl.Err(err))
		os.Exit(1)
	}
	defer closeStore()

	log.Info("storage ready", slog.String("kind", cfg.Storage.Kind))

	notifier, closeNotifier, err := setupNotifier(cfg, log)
	if err != nil {
		log.Error("failed to set up notifier", sl.Err(err))
		os.Exit(1)
	}
	defer closeNotifier()

	var dir employees.Directory
	switch cfg.Directory.Kind {
	case config.DirectoryPlaceholder:
		dir = placeholder.New(log, cfg.Directory.PlaceholderURL, cfg.Directory.Timeout)
	default:
		dir = directory.New(log, store)
	}

	r := router.New(log, router.Deps{
		Auth:           auth.New(log, store, notifier, cfg.PublicURL),
		Directory:      dir,
		Messages:       messaging.New(log, store),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimit:      cfg.Env != envLocal,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      r,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server is running", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", sl.Err(err))
			cancel()
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down HTTP server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", sl.Err(err))
	} else {
		log.Info("Server stopped gracefully")
	}

	log.Info("Main service stopped")
}

func setupNotifier(cfg *config.Config, log *slog.Logger) (auth.Publisher, func(), error) {
	switch cfg.Notifier.Kind {
	case config.NotifierRabbitMQ:
		msgBroker, err := rabbitmq.NewPublisher(cfg.Notifier.RabbitMQ.URL, cfg.Notifier.RabbitMQ.QueueName)
		if err != nil {
			return nil, nil, err
		}

		return msgBroker, msgBroker.Close, nil
	case config.NotifierLog:
		return &mailer.LogSender{Log: log}, func() {}, nil
	default:
		return &mailer.Mailer{
			Host:     cfg.Notifier.SMTP.Host,
			Port:     cfg.Notifier.SMTP.Port,
			Username: cfg.Notifier.SMTP.Username,
			Password: cfg.Notifier.SMTP.Password,
			From:     cfg.Notifier.From,
		}, func() {}, nil
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
