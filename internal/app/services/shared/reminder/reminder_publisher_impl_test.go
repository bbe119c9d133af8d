package reminder

import (
	"carelog-service/internal/pkg/constvars"
	"carelog-service/internal/pkg/dto/requests"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChannel struct {
	published []amqp.Publishing
	keys      []string
	err       error
	confirms  chan amqp.Confirmation
	ack       bool
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	f.keys = append(f.keys, key)
	if f.confirms != nil {
		f.confirms <- amqp.Confirmation{DeliveryTag: uint64(len(f.published)), Ack: f.ack}
	}
	return nil
}

func newFakeChannel(ack bool) *fakeChannel {
	return &fakeChannel{confirms: make(chan amqp.Confirmation, 1), ack: ack}
}

func TestPublishMissingSleepReminder(t *testing.T) {
	reminder := &requests.MissingSleepReminder{
		ResidentID:   "r1",
		ResidentName: "Jane Doe",
		Date:         "2025-04-02",
		MissingSlots: []string{"12:00AM", "1:00AM"},
	}

	t.Run("Publishes a persistent JSON message", func(t *testing.T) {
		ch := newFakeChannel(true)
		publisher := newReminderPublisher(ch, ch.confirms, "sleep_reminders", zap.NewNop())

		require.NoError(t, publisher.PublishMissingSleepReminder(context.Background(), reminder))
		require.Len(t, ch.published, 1)
		assert.Equal(t, "sleep_reminders", ch.keys[0])
		assert.Equal(t, amqp.Persistent, ch.published[0].DeliveryMode)
		assert.Equal(t, constvars.MIMEApplicationJSON, ch.published[0].ContentType)

		var decoded requests.MissingSleepReminder
		require.NoError(t, json.Unmarshal(ch.published[0].Body, &decoded))
		assert.Equal(t, *reminder, decoded)
	})

	t.Run("Nack is an error", func(t *testing.T) {
		ch := newFakeChannel(false)
		publisher := newReminderPublisher(ch, ch.confirms, "sleep_reminders", zap.NewNop())

		assert.Error(t, publisher.PublishMissingSleepReminder(context.Background(), reminder))
	})

	t.Run("Publish failure is an error", func(t *testing.T) {
		ch := newFakeChannel(true)
		ch.err = errors.New("channel closed")
		publisher := newReminderPublisher(ch, ch.confirms, "sleep_reminders", zap.NewNop())

		assert.Error(t, publisher.PublishMissingSleepReminder(context.Background(), reminder))
	})

	t.Run("Missing confirm gives up when the context ends", func(t *testing.T) {
		ch := &fakeChannel{}
		publisher := newReminderPublisher(ch, make(chan amqp.Confirmation), "sleep_reminders", zap.NewNop())

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.Error(t, publisher.PublishMissingSleepReminder(ctx, reminder))
	})
}
