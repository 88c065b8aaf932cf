package producer_test

import (
	"context"
	"errors"
	"testing"

	"go-vacation/internal/messaging/kafka"
	kafkaMock "go-vacation/internal/messaging/kafka/mock"
	"go-vacation/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type recordingWriter struct {
	messages []kafkago.Message
	failFor  string
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if string(m.Key) == w.failFor {
			return errors.New("broker unavailable")
		}
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func TestProcessPending(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &recordingWriter{}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{
			{ID: "o1", RequestID: "rid", AggregateID: "leave-1", EventType: "leave_submitted", Topic: "t", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkSent(ctx, "o1").Return(nil)

		sent, err := producer.ProcessPending(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Len(t, writer.messages, 1)
		assert.Equal(t, "leave-1", string(writer.messages[0].Key))
		assert.Equal(t, "request_id", writer.messages[0].Headers[2].Key)
	})

	t.Run("failed publish is scheduled for retry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &recordingWriter{failFor: "leave-2"}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{
			{ID: "o2", AggregateID: "leave-2", Topic: "t", Payload: []byte(`{}`)},
			{ID: "o3", AggregateID: "leave-3", Topic: "t", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkFailed(ctx, "o2", "broker unavailable").Return(nil)
		repo.EXPECT().MarkSent(ctx, "o3").Return(nil)

		sent, err := producer.ProcessPending(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("negative list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, 50).Return(nil, errors.New("db down"))

		_, err := producer.ProcessPending(ctx, repo, &recordingWriter{}, zap.NewNop())

		assert.EqualError(t, err, "db down")
	})
}
