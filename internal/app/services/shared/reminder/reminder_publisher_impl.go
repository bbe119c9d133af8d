package reminder

import (
	"carelog-service/internal/app/contracts"
	"carelog-service/internal/pkg/constvars"
	"carelog-service/internal/pkg/dto/requests"
	"carelog-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type reminderPublisher struct {
	ch       publishChannel
	confirms <-chan amqp.Confirmation
	queue    string
	log      *zap.Logger
	mu       sync.Mutex
}

// NewReminderPublisher opens a channel, declares the durable reminder queue and
// enables publisher confirms.
func NewReminderPublisher(conn *amqp.Connection, queue string, log *zap.Logger) (contracts.ReminderPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return newReminderPublisher(ch, ch.NotifyPublish(make(chan amqp.Confirmation, 1)), queue, log), nil
}

func newReminderPublisher(ch publishChannel, confirms <-chan amqp.Confirmation, queue string, log *zap.Logger) *reminderPublisher {
	return &reminderPublisher{
		ch:       ch,
		confirms: confirms,
		queue:    queue,
		log:      log,
	}
}

// PublishMissingSleepReminder publishes a persistent message and waits for the broker confirm.
func (p *reminderPublisher) PublishMissingSleepReminder(ctx context.Context, reminder *requests.MissingSleepReminder) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.log.Info("reminderPublisher.PublishMissingSleepReminder called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResidentIDKey, reminder.ResidentID),
		zap.Int(constvars.LoggingMissingCountKey, len(reminder.MissingSlots)),
	)

	body, err := json.Marshal(reminder)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.queue)
	}

	select {
	case confirmed := <-p.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), p.queue)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), p.queue)
	}
	return nil
}
