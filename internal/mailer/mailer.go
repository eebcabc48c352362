package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"staff_portal/internal/models"

	"gopkg.in/gomail.v2"
)

// Mailer delivers mail over SMTP and returns once the server accepted it.
type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (m *Mailer) SendMessage(ctx context.Context, mail models.Mail) error {
	const op = "mailer.SendMessage"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg := m.compose(mail)

	dialer := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (m *Mailer) compose(mail models.Mail) *gomail.Message {
	from := m.From
	if from == "" {
		from = m.Username
	}

	msg := gomail.NewMessage()
	msg.SetHeader("To", mail.To)
	msg.SetHeader("From", from)
	msg.SetHeader("Subject", mail.Subject)

	msg.SetBody("text/html", mail.Body)

	return msg
}

// LogSender only logs outgoing mail. Used for local runs without an SMTP account.
type LogSender struct {
	Log *slog.Logger
}

func (l *LogSender) SendMessage(_ context.Context, mail models.Mail) error {
	l.Log.Info("outgoing mail",
		slog.String("to", mail.To),
		slog.String("subject", mail.Subject),
		slog.String("body", mail.Body),
	)

	return nil
}
