package kafka_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"go-vacation/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestNewOutboxEvent(t *testing.T) {
	event, err := kafka.NewOutboxEvent("rid", "leave", "leave-1", "leave_submitted", "topic", map[string]int{"days": 14})

	assert.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, kafka.OutboxStatusPending, event.Status)
	assert.JSONEq(t, `{"days":14}`, string(event.Payload))
	assert.NoError(t, kafka.ValidateOutboxEvent(event))
}

func TestOutboxRepository_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	repo := kafka.NewOutboxRepository(db)

	t.Run("inserts pending row", func(t *testing.T) {
		event, _ := kafka.NewOutboxEvent("rid", "leave", "leave-1", "leave_submitted", "topic", struct{}{})
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
			WithArgs(event.ID, "rid", "leave", "leave-1", "leave_submitted", "topic", event.Payload, kafka.OutboxStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(context.Background(), event))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative invalid row is never written", func(t *testing.T) {
		err := repo.Create(context.Background(), kafka.OutboxEvent{ID: "x", Topic: "t", Status: kafka.OutboxStatusPending})

		assert.EqualError(t, err, "outbox payload is required")
	})
}

func TestOutboxRepository_PurgeSent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	repo := kafka.NewOutboxRepository(db)
	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM outbox_events")).
		WithArgs(kafka.OutboxStatusSent, cutoff).
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := repo.PurgeSent(context.Background(), cutoff)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	repo := kafka.NewOutboxRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("o1", kafka.OutboxStatusFailed, "broker unavailable", kafka.MaxPublishAttempts, kafka.OutboxStatusDead).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkFailed(context.Background(), "o1", "broker unavailable"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	repo := kafka.NewOutboxRepository(db)
	created := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at",
	}).AddRow("o1", "rid", "leave", "leave-1", "leave_submitted", "topic", []byte(`{}`), kafka.OutboxStatusFailed, 2, created)

	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 50).
		WillReturnRows(rows)

	events, err := repo.ListPending(context.Background(), 50)

	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "leave-1", events[0].AggregateID)
	assert.Equal(t, 2, events[0].RetryCount)
}
