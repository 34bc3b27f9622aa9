package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewEvent(t *testing.T) {
	event := NewEvent(StudentCreated, EntityEvent{EntityID: 7, Email: "a@x.com"})

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, StudentCreated, event.Type)
	assert.Equal(t, EventSource, event.Source)
	assert.Equal(t, EventVersion, event.Version)
	assert.WithinDuration(t, time.Now(), event.Timestamp, time.Minute)
}

func TestWatermillPublisher_InProcess(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	publisher, pubSub := NewInProcessPublisher("studyhub.test", testLogger())
	defer publisher.Close()

	messages, err := pubSub.Subscribe(ctx, "studyhub.test")
	require.NoError(t, err)

	event := NewEvent(MemberSyncFailed, SyncFailedEvent{Operation: "create", Role: "student", Email: "a@x.com"})
	require.NoError(t, publisher.Publish(ctx, event))

	select {
	case msg := <-messages:
		defer msg.Ack()
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, MemberSyncFailed, msg.Metadata.Get("event_type"))

		var decoded struct {
			Type string          `json:"type"`
			Data SyncFailedEvent `json:"data"`
		}
		require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
		assert.Equal(t, MemberSyncFailed, decoded.Type)
		assert.Equal(t, "a@x.com", decoded.Data.Email)
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}
}

func TestMockEventPublisher(t *testing.T) {
	mock := NewMockEventPublisher(testLogger())
	ctx := context.Background()

	require.NoError(t, mock.Publish(ctx, NewEvent(TutorCreated, nil)))
	require.NoError(t, mock.Publish(ctx, NewEvent(TutorDeleted, nil)))

	assert.Len(t, mock.GetPublishedEvents(), 2)
	assert.Len(t, mock.EventsOfType(TutorDeleted), 1)

	mock.ClearEvents()
	assert.Empty(t, mock.GetPublishedEvents())

	mock.FailWith(errors.New("broker down"))
	assert.Error(t, mock.Publish(ctx, NewEvent(TutorCreated, nil)))
	assert.Empty(t, mock.GetPublishedEvents())
}

type recordingHandler struct {
	slog.Handler
	records chan slog.Record
}

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.records <- r
	return nil
}

func TestLogEvents(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	publisher, pubSub := NewInProcessPublisher("studyhub.log", testLogger())
	defer publisher.Close()

	handler := &recordingHandler{
		Handler: slog.NewTextHandler(io.Discard, nil),
		records: make(chan slog.Record, 4),
	}
	require.NoError(t, LogEvents(ctx, pubSub, "studyhub.log", slog.New(handler)))

	require.NoError(t, publisher.Publish(ctx, NewEvent(MemberSyncFailed, SyncFailedEvent{Email: "a@x.com"})))

	select {
	case record := <-handler.records:
		assert.Equal(t, slog.LevelWarn, record.Level)
		assert.Equal(t, "Event received", record.Message)
	case <-ctx.Done():
		t.Fatal("timed out waiting for log record")
	}
}
