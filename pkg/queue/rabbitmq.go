package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"postcraft/pkg/config"
	"postcraft/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DistributionQueueName = "distribution_queue"
	DistributionExchange  = "distribution"
	PostSubmittedKey      = "post_submitted"

	// Failed tasks wait in the retry queue until their per-message TTL
	// expires, then dead-letter back onto DistributionExchange.
	RetryQueueName = "distribution_retry_queue"
	retryKey       = "post_submitted.retry"

	// Rejected tasks end up here for inspection.
	DeadLetterExchange  = "distribution.dlx"
	DeadLetterQueueName = "distribution_dead_letter"

	// MaxAttempts bounds how often one task is handed to the handler.
	MaxAttempts = 5

	attemptsHeader = "x-attempts"
	maxRetryDelay  = time.Minute
	maxPriority    = 10
)

var (
	ErrMalformedTask = errors.New("malformed task")
	// ErrPermanent marks a failure that retrying cannot fix, such as a 4xx
	// from a platform API.
	ErrPermanent = errors.New("permanent delivery failure")
)

// PostSubmittedTask is published once per persisted post.
type PostSubmittedTask struct {
	Type        string    `json:"type"`
	PostID      string    `json:"post_id"`
	OwnerID     string    `json:"owner_id"`
	Platforms   []string  `json:"platforms"`
	Text        string    `json:"text"`
	Hashtags    string    `json:"hashtags,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	VideoURL    string    `json:"video_url,omitempty"`
	BrandName   string    `json:"brand_name,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
	Priority    int       `json:"priority"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func declareTopology(channel *amqp.Channel) error {
	for _, exchange := range []string{DistributionExchange, DeadLetterExchange} {
		err := channel.ExchangeDeclare(
			exchange, // name
			"direct", // type
			true,     // durable
			false,    // auto-deleted
			false,    // internal
			false,    // no-wait
			nil,      // arguments
		)
		if err != nil {
			return fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
		}
	}

	queues := []struct {
		name     string
		key      string
		exchange string
		args     amqp.Table
	}{
		{DistributionQueueName, PostSubmittedKey, DistributionExchange, mainQueueArgs()},
		{RetryQueueName, retryKey, DistributionExchange, amqp.Table{
			"x-dead-letter-exchange":    DistributionExchange,
			"x-dead-letter-routing-key": PostSubmittedKey,
		}},
		{DeadLetterQueueName, PostSubmittedKey, DeadLetterExchange, nil},
	}
	for _, q := range queues {
		_, err := channel.QueueDeclare(
			q.name, // name
			true,   // durable
			false,  // delete when unused
			false,  // exclusive
			false,  // no-wait
			q.args,
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", q.name, err)
		}
		if err := channel.QueueBind(q.name, q.key, q.exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue %s: %w", q.name, err)
		}
	}
	return nil
}

func mainQueueArgs() amqp.Table {
	return amqp.Table{
		"x-max-priority":         maxPriority,
		"x-dead-letter-exchange": DeadLetterExchange,
	}
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func clampPriority(p int) uint8 {
	if p < 0 {
		return 0
	}
	if p > maxPriority {
		return maxPriority
	}
	return uint8(p)
}

// PublishPostSubmitted enqueues a distribution task for a freshly stored post.
func (c *Client) PublishPostSubmitted(ctx context.Context, task PostSubmittedTask) error {
	if task.Type == "" {
		task.Type = PostSubmittedKey
	}

	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	err = c.channel.PublishWithContext(ctx,
		DistributionExchange, // exchange
		PostSubmittedKey,     // routing key
		false,                // mandatory
		false,                // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Priority:     clampPriority(task.Priority),
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish post_id=%s to exchange=%s: %v", task.PostID, DistributionExchange, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published post_submitted task post_id=%s platforms=%v", task.PostID, task.Platforms)
	return nil
}

// DecodeTask parses a delivery body. Bodies that cannot be decoded or carry
// no post id are reported as ErrMalformedTask.
func DecodeTask(body []byte) (PostSubmittedTask, error) {
	var task PostSubmittedTask
	if err := json.Unmarshal(body, &task); err != nil {
		return task, fmt.Errorf("%w: %v", ErrMalformedTask, err)
	}
	if task.PostID == "" {
		return task, fmt.Errorf("%w: missing post_id", ErrMalformedTask)
	}
	return task, nil
}

// Outcome of handling one delivery.
type Outcome int

const (
	Ack Outcome = iota
	Reject
	Requeue
)

// Settle decides what to do with a delivery body given a handler. attempt
// counts from 1. Malformed and permanently failing tasks are rejected, and
// so is a transient failure once attempt reaches MaxAttempts.
func Settle(body []byte, attempt int, handler func(PostSubmittedTask) error) (Outcome, error) {
	task, err := DecodeTask(body)
	if err != nil {
		return Reject, err
	}
	if err := handler(task); err != nil {
		if errors.Is(err, ErrMalformedTask) || errors.Is(err, ErrPermanent) {
			return Reject, err
		}
		if attempt >= MaxAttempts {
			return Reject, fmt.Errorf("giving up after %d attempts: %w", attempt, err)
		}
		return Requeue, err
	}
	return Ack, nil
}

// Attempts reads how many times a delivery has already been handled.
func Attempts(headers amqp.Table) int {
	switch v := headers[attemptsHeader].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

// RetryDelay is the wait before the given attempt is redelivered: 1s, 2s,
// 4s and so on, capped at a minute.
func RetryDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > 7 {
		return maxRetryDelay
	}
	d := time.Second << (attempt - 1)
	if d > maxRetryDelay {
		return maxRetryDelay
	}
	return d
}

// retry parks a copy of msg in the retry queue with its attempt count
// bumped. The original is acked by the caller once this succeeds.
func (c *Client) retry(ctx context.Context, msg amqp.Delivery, attempt int) error {
	return c.channel.PublishWithContext(ctx,
		DistributionExchange, // exchange
		retryKey,             // routing key
		false,                // mandatory
		false,                // immediate
		amqp.Publishing{
			ContentType:  msg.ContentType,
			Body:         msg.Body,
			Priority:     msg.Priority,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Headers:      amqp.Table{attemptsHeader: int32(attempt)},
			Expiration:   strconv.FormatInt(RetryDelay(attempt).Milliseconds(), 10),
		},
	)
}

// ConsumePostSubmitted runs handler for each delivery until ctx is done or the
// channel closes.
func (c *Client) ConsumePostSubmitted(ctx context.Context, handler func(PostSubmittedTask) error) error {
	msgs, err := c.channel.ConsumeWithContext(ctx,
		DistributionQueueName, // queue
		"",                    // consumer
		false,                 // auto-ack
		false,                 // exclusive
		false,                 // no-local
		false,                 // no-wait
		nil,                   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("[RABBITMQ] Started consuming from %s", DistributionQueueName)

	go func() {
		for msg := range msgs {
			attempt := Attempts(msg.Headers) + 1
			outcome, err := Settle(msg.Body, attempt, handler)
			switch outcome {
			case Ack:
				msg.Ack(false)
			case Reject:
				c.logger.Error("[RABBITMQ] Dead-lettering task after attempt %d: %v, body=%s", attempt, err, string(msg.Body))
				msg.Nack(false, false)
			case Requeue:
				c.logger.Warn("[RABBITMQ] Retrying task in %s (attempt %d/%d): %v", RetryDelay(attempt), attempt, MaxAttempts, err)
				if perr := c.retry(ctx, msg, attempt); perr != nil {
					c.logger.Error("[RABBITMQ] Failed to schedule retry: %v", perr)
					msg.Nack(false, true)
					continue
				}
				msg.Ack(false)
			}
		}
		c.logger.Info("[RABBITMQ] Consumer for %s stopped", DistributionQueueName)
	}()

	return nil
}

// QueueDepth returns the number of ready messages.
func (c *Client) QueueDepth() (int, error) {
	queue, err := c.channel.QueueDeclarePassive(DistributionQueueName, true, false, false, false, mainQueueArgs())
	if err != nil {
		return 0, err
	}
	return queue.Messages, nil
}
