package producers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDLQProducer_PublishToDLQ(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	t.Run("SuccessfulPublish", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &DLQProducer{
			logger:   logger,
			writer:   mockWriter,
			dlqTopic: "test-dlq",
		}

		key := "msg-key"
		original := []byte(`{"broken":`)
		reason := "failed to decode inbound message"

		mockWriter.On("WriteMessages", ctx, mock.MatchedBy(func(msgs []kafka.Message) bool {
			if len(msgs) != 1 {
				return false
			}
			msg := msgs[0]
			if string(msg.Key) != key {
				return false
			}
			var payload struct {
				OriginalKey   string `json:"original_key"`
				OriginalValue string `json:"original_value"`
				DLQReason     string `json:"dlq_reason"`
			}
			if err := json.Unmarshal(msg.Value, &payload); err != nil {
				return false
			}
			return payload.OriginalKey == key &&
				payload.OriginalValue == string(original) &&
				payload.DLQReason == reason
		})).Return(nil).Once()

		err := producer.PublishToDLQ(ctx, key, original, reason)
		require.NoError(t, err)
		mockWriter.AssertExpectations(t)
	})

	t.Run("PublishReturnsErrorOnWriterError", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &DLQProducer{
			logger:   logger,
			writer:   mockWriter,
			dlqTopic: "test-dlq",
		}

		writerError := errors.New("kafka write error")
		mockWriter.On("WriteMessages", ctx, mock.AnythingOfType("[]kafka.Message")).Return(writerError).Once()

		err := producer.PublishToDLQ(ctx, "msg-key", []byte("value"), "reason")
		require.Error(t, err)
		assert.Contains(t, err.Error(), writerError.Error())
		mockWriter.AssertExpectations(t)
	})

	t.Run("UninitializedProducer", func(t *testing.T) {
		producer := &DLQProducer{logger: logger}

		err := producer.PublishToDLQ(ctx, "msg-key", []byte("value"), "reason")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not initialized")
	})
}

func TestDLQProducer_Close(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	t.Run("SuccessfulClose", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &DLQProducer{logger: logger, writer: mockWriter, dlqTopic: "test-dlq"}

		mockWriter.On("Close").Return(nil).Once()

		require.NoError(t, producer.Close())
		mockWriter.AssertExpectations(t)
	})

	t.Run("CloseOnUninitializedProducerIsNoOp", func(t *testing.T) {
		producer := &DLQProducer{logger: logger}
		require.NoError(t, producer.Close())
	})
}
