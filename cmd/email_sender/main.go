package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"staff_portal/internal/config"
	sl "staff_portal/internal/lib/logger/sl"
	"staff_portal/internal/mailer"
	"staff_portal/internal/rabbitmq"

	"github.com/joho/godotenv"
)

const (
	envLocal = "local"
	envDev   = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg := config.MustLoad(config.Path())
	log := setupLogger(cfg.Env)

	log.Info("Starting email_sender", slog.String("env", cfg.Env))

	startConsumer(ctx, cfg, log)
}

func startConsumer(ctx context.Context, cfg *config.Config, log *slog.Logger) {
	r, err := rabbitmq.New(cfg.Notifier.RabbitMQ.URL, cfg.Notifier.RabbitMQ.QueueName)
	if err != nil {
		log.Error("failed to init rabbitmq", sl.Err(err))
		return
	}
	defer r.Close()

	m := &mailer.Mailer{
		Host:     cfg.Notifier.SMTP.Host,
		Port:     cfg.Notifier.SMTP.Port,
		Username: cfg.Notifier.SMTP.Username,
		Password: cfg.Notifier.SMTP.Password,
		From:     cfg.Notifier.From,
	}

	done := make(chan struct{})

	go func() {
		defer close(done)

		err := r.StartReading(ctx, func(body []byte) error {
			mail, err := rabbitmq.Decode(body)
			if err != nil {
				log.Error("failed to unmarshal message", sl.Err(err))
				return err
			}

			if err := m.SendMessage(ctx, mail); err != nil {
				log.Error("failed to send message", sl.Err(err), slog.String("to", mail.To))
				return err
			}

			log.Info("message sent successfully", slog.String("to", mail.To))

			return nil
		})
		if err != nil {
			log.Error("failed to start reading", sl.Err(err))
			return
		}
	}()

	log.Info("consumer successfully started")

	select {
	case <-ctx.Done():
		log.Info("shutting down consumer...")
	case <-done:
		log.Info("consumer finished the work")
	}

	log.Info("service gracefully stopped")
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
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
