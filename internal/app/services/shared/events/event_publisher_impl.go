package events

import (
	"context"
	"labcore-service/internal/app/contracts"
	"labcore-service/internal/app/models"
	"labcore-service/internal/pkg/constvars"
	"labcore-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	EventCriticalValue   = "result.critical_value"
	EventResultAmendment = "result.amended"
)

// LifecycleEvent is the payload placed on the event queue. The engine only
// flags that a notification is owed; consumers own delivery.
type LifecycleEvent struct {
	Event          string                 `json:"event"`
	ResultID       string                 `json:"result_id"`
	ResultNumber   string                 `json:"result_number"`
	OrderID        string                 `json:"order_id"`
	PatientID      string                 `json:"patient_id"`
	CriticalValues []models.CriticalValue `json:"critical_values,omitempty"`
	Amendment      *models.Amendment      `json:"amendment,omitempty"`
	OccurredAt     time.Time              `json:"occurred_at"`
}

type eventPublisher struct {
	ch        *amqp.Channel
	queueName string
	Log       *zap.Logger
}

func NewEventPublisher(conn *amqp.Connection, queueName string, logger *zap.Logger) (contracts.EventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &eventPublisher{
		ch:        ch,
		queueName: queueName,
		Log:       logger,
	}, nil
}

func (p *eventPublisher) PublishCriticalValues(ctx context.Context, result *models.Result) error {
	event := LifecycleEvent{
		Event:          EventCriticalValue,
		ResultID:       result.ID,
		ResultNumber:   result.ResultNumber,
		OrderID:        result.OrderID,
		PatientID:      result.PatientID,
		CriticalValues: result.CriticalValues,
		OccurredAt:     time.Now(),
	}
	return p.publish(ctx, event)
}

func (p *eventPublisher) PublishAmendment(ctx context.Context, result *models.Result, amendment models.Amendment) error {
	event := LifecycleEvent{
		Event:        EventResultAmendment,
		ResultID:     result.ID,
		ResultNumber: result.ResultNumber,
		OrderID:      result.OrderID,
		PatientID:    result.PatientID,
		Amendment:    &amendment,
		OccurredAt:   time.Now(),
	}
	return p.publish(ctx, event)
}

func (p *eventPublisher) publish(ctx context.Context, event LifecycleEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.queueName)
	}

	err = p.ch.PublishWithContext(ctx,
		"", // default exchange
		p.queueName,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  constvars.MIMEApplicationJSON,
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		p.Log.Error("eventPublisher.publish failed",
			zap.String(constvars.LoggingEventKey, event.Event),
			zap.String(constvars.LoggingQueueKey, p.queueName),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, p.queueName)
	}

	p.Log.Info("eventPublisher.publish succeeded",
		zap.String(constvars.LoggingEventKey, event.Event),
		zap.String(constvars.LoggingResultNumberKey, event.ResultNumber),
	)
	return nil
}
