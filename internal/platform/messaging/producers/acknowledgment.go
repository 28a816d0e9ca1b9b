package producers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/wallet-topup-ledger/internal/config"
)

// AckProducer publishes operator acknowledgments to the acks topic, keyed by
// channel id so replies to one channel stay ordered. The payload is the
// plain acknowledgment text, not JSON; the delivery collaborator forwards it
// verbatim.
type AckProducer struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

// NewAckProducer creates the acknowledgment producer and ensures its topic exists
func NewAckProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*AckProducer, error) {
	if cfg.AcksTopic == "" {
		return nil, fmt.Errorf("kafka acks topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for ack producer: %w", err)
	}
	defer conn.Close()

	err = createKafkaTopicIfNotExists(conn, cfg.AcksTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure acks topic %s exists: %w", cfg.AcksTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.AcksTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // Acks are fire-and-forget
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write acknowledgments asynchronously", "topic", cfg.AcksTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote acknowledgments asynchronously", "topic", cfg.AcksTopic, "count", len(messages))
			}
		},
	}

	return &AckProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.AcksTopic,
	}, nil
}

func (p *AckProducer) Publish(ctx context.Context, channelID string, text string) error {
	msg := kafka.Message{
		Key:   []byte(channelID),
		Value: []byte(text),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish acknowledgment",
			"topic", p.topic,
			"channel_id", channelID,
			"error", err,
		)
		return fmt.Errorf("failed to publish acknowledgment to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published acknowledgment",
		"topic", p.topic,
		"channel_id", channelID,
	)
	return nil
}

func (p *AckProducer) Close() error {
	p.logger.Info("Closing acknowledgment Kafka producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close ack kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
