package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/amirkasheesh/hse-uploader/internal/fileanalysis/models"
)

const (
	exchangeName = "submissions_exchange"
	analyzedKey  = "submission.analyzed"
)

// Publisher отправляет доменные события в брокер. Nil-значение означает,
// что брокер не настроен и публикация отключена.
type Publisher interface {
	PublishSubmissionAnalyzed(ctx context.Context, event *models.SubmissionAnalyzedEvent) error
	Close() error
}

type rabbitPublisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	logger  zerolog.Logger
}

func NewRabbitPublisher(url string, logger zerolog.Logger) (Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	logger.Info().Str("exchange", exchangeName).Msg("Connected to RabbitMQ")

	return &rabbitPublisher{
		conn:    conn,
		channel: channel,
		logger:  logger,
	}, nil
}

func (p *rabbitPublisher) PublishSubmissionAnalyzed(ctx context.Context, event *models.SubmissionAnalyzedEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return p.channel.PublishWithContext(
		ctx,
		exchangeName,
		analyzedKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         message,
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
		},
	)
}

func (p *rabbitPublisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.logger.Error().Err(err).Msg("Failed to close RabbitMQ channel")
		}
	}

	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			p.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	return nil
}
