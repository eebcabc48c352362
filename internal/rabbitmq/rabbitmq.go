package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"staff_portal/internal/models"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrNotConfirmed = errors.New("broker did not confirm the message")

type RabbitMQClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue

	// publishing and confirm tracking share the channel
	mu sync.Mutex
}

func New(urlForConn string, queueName string) (*RabbitMQClient, error) {
	const op = "rabbimq.New"

	conn, err := amqp.Dial(urlForConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	q, err := ch.QueueDeclare(
		queueName, true, false, false, false, nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RabbitMQClient{
		conn:    conn,
		channel: ch,
		queue:   q,
	}, nil
}

// NewPublisher opens a client in confirm mode, so SendMessage returns only after the broker took the message.
func NewPublisher(urlForConn string, queueName string) (*RabbitMQClient, error) {
	const op = "rabbimq.NewPublisher"

	r, err := New(urlForConn, queueName)
	if err != nil {
		return nil, err
	}

	if err := r.channel.Confirm(false); err != nil {
		r.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return r, nil
}

func (r *RabbitMQClient) SendMessage(ctx context.Context, msg models.Mail) error {
	const op = "rabbimq.SendMessage"

	publishing, err := encode(msg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r.mu.Lock()
	confirm, err := r.channel.PublishWithDeferredConfirmWithContext(
		ctx,
		"",
		r.queue.Name,
		false,
		false,
		publishing,
	)
	r.mu.Unlock()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// nil when the channel is not in confirm mode
	if confirm == nil {
		return nil
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !acked {
		return fmt.Errorf("%s: %w", op, ErrNotConfirmed)
	}

	return nil
}

// StartReading consumes the queue until ctx is done or the channel closes.
// Messages the handler fails on are requeued once and dropped on the second failure.
func (r *RabbitMQClient) StartReading(ctx context.Context, handler func(msg []byte) error) error {
	const op = "rabbimq.StartReading"

	deliveries, err := r.channel.ConsumeWithContext(
		ctx,
		r.queue.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}

			if err := handler(d.Body); err != nil {
				_ = d.Nack(false, !d.Redelivered)
				continue
			}

			_ = d.Ack(false)
		}
	}
}

func (r *RabbitMQClient) Close() {
	_ = r.channel.Close()
	_ = r.conn.Close()
}

func encode(msg models.Mail) (amqp.Publishing, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return amqp.Publishing{}, err
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    uuid.NewString(),
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	}, nil
}

// Decode parses a message body produced by SendMessage.
func Decode(body []byte) (models.Mail, error) {
	var m models.Mail
	if err := json.Unmarshal(body, &m); err != nil {
		return models.Mail{}, fmt.Errorf("rabbimq.Decode: %w", err)
	}

	return m, nil
}
