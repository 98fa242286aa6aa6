package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/tenantgate/admin-portal/internal/pkg/metrics"
)

const publishTimeout = 5 * time.Second

// Client is a single-channel RabbitMQ connection that publishes persistent
// JSON messages.
type Client struct {
	conn *amqp.Connection
	mu   sync.Mutex
	ch   *amqp.Channel
}

// Dial opens a connection and a channel and declares queue as durable.
func Dial(url, queue string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq declare %s: %w", queue, err)
	}
	return &Client{conn: conn, ch: ch}, nil
}

// Publish sends body to queue through the default exchange.
func (c *Client) Publish(ctx context.Context, queue string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ch.PublishWithContext(ctx,
		"",    // exchange
		queue, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

// Close shuts the channel and then the connection.
func (c *Client) Close() error {
	if err := c.ch.Close(); err != nil {
		return err
	}
	return c.conn.Close()
}

// Publisher is the subset of Client used by RabbitNotifier.
type Publisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}

// InviteEmail is the job consumed by the mail worker.
type InviteEmail struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Link    string `json:"link"`
}

const inviteSubject = "Your OTP Link"

// RabbitNotifier queues invite e-mails on RabbitMQ.
type RabbitNotifier struct {
	pub    Publisher
	queue  string
	logger zerolog.Logger
}

func NewRabbitNotifier(pub Publisher, queue string, logger zerolog.Logger) *RabbitNotifier {
	return &RabbitNotifier{pub: pub, queue: queue, logger: logger}
}

func (n *RabbitNotifier) SendInviteLink(ctx context.Context, from, to, link string) (err error) {
	defer func() { metrics.NotificationsTotal.WithLabelValues("rabbitmq", metrics.Result(err)).Inc() }()

	body, err := json.Marshal(InviteEmail{From: from, To: to, Subject: inviteSubject, Link: link})
	if err != nil {
		return fmt.Errorf("encode invite email: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := n.pub.Publish(ctx, n.queue, body); err != nil {
		return fmt.Errorf("publish invite email: %w", err)
	}
	n.logger.Debug().Str("to", to).Str("queue", n.queue).Msg("invite email queued")
	return nil
}
