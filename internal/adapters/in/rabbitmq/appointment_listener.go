package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/booking-scheduling-engine/internal/config"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/domain"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/ports/out"
)

type EventType string

const (
	EventTypeStore      EventType = "store"
	EventTypeInvalidate EventType = "invalidate"
)

type EventResourceType string

const (
	EventResourceTypeAppointment EventResourceType = "appointment"
	EventResourceTypeTenant      EventResourceType = "tenant"
)

type EventRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType EventResourceType
	EventType    EventType
}

// AppointmentEventMessage — событие жизненного цикла записи из контура бронирования
type AppointmentEventMessage struct {
	StaffID     string                 `json:"staffId"`
	TenantID    string                 `json:"tenantId"`
	Appointment domain.AppointmentSlot `json:"appointment"`
}

// AppointmentListener поддерживает календари сотрудников и кэши
// в актуальном состоянии по событиям платформы бронирования
type AppointmentListener struct {
	conn         *amqp.Connection
	channel      *amqp.Channel
	calendarPort out.CalendarPort
	cachePort    out.CachePort
	cfg          *config.Config
	logger       out.LoggerPort
}

func NewAppointmentListener(calendarPort out.CalendarPort, cachePort out.CachePort, cfg *config.Config, logger out.LoggerPort) (*AppointmentListener, error) {
	if !cfg.RabbitMq.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMq.AmqpUri)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMq.AmqpUri,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &AppointmentListener{
		conn:         conn,
		channel:      channel,
		calendarPort: calendarPort,
		cachePort:    cachePort,
		cfg:          cfg,
		logger:       logger,
	}, nil
}

func (l *AppointmentListener) Start(ctx context.Context) error {
	if err := l.startQueue(ctx, l.cfg.RabbitMq.QueueConfig.AppointmentQueueName); err != nil {
		return err
	}
	l.logger.Info("appointment.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMq.QueueConfig.AppointmentQueueName,
	})

	if err := l.startQueue(ctx, l.cfg.RabbitMq.QueueConfig.TenantQueueName); err != nil {
		return err
	}
	l.logger.Info("tenant.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMq.QueueConfig.TenantQueueName,
	})

	return nil
}

func (l *AppointmentListener) startQueue(ctx context.Context, queueName string) error {
	queue, err := l.channel.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				if err := l.processMessage(ctx, msg); err != nil {
					l.logger.Error("rabbitmq.message.process_failed", out.LogFields{
						"routingKey": msg.RoutingKey,
						"error":      err.Error(),
					})
					msg.Nack(false, false)
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	return nil
}

// Пример routingKey:
// booking.scheduling-engine.appointment.store
// booking.scheduling-engine.appointment.invalidate
// booking.scheduling-engine.tenant.invalidate
func (l *AppointmentListener) parseEventRoutingKey(msg amqp.Delivery) (EventRoutingKey, error) {
	routingKey := msg.RoutingKey
	parts := strings.Split(routingKey, ".")

	if len(parts) < 4 {
		return EventRoutingKey{}, fmt.Errorf("invalid routing key: %s", routingKey)
	}

	return EventRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: EventResourceType(parts[2]),
		EventType:    EventType(parts[3]),
	}, nil
}

func (l *AppointmentListener) processMessage(ctx context.Context, msg amqp.Delivery) error {
	key, err := l.parseEventRoutingKey(msg)
	if err != nil {
		return err
	}

	switch key.ResourceType {
	case EventResourceTypeAppointment:
		return l.processAppointmentEvent(ctx, key, msg)
	case EventResourceTypeTenant:
		return l.processTenantEvent(ctx, key)
	default:
		return fmt.Errorf("unknown resource type: %s", key.ResourceType)
	}
}

func (l *AppointmentListener) processAppointmentEvent(ctx context.Context, key EventRoutingKey, msg amqp.Delivery) error {
	var event AppointmentEventMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return err
	}

	switch key.EventType {
	case EventTypeStore:
		// Отмененные записи не реплицируем, убираем из календаря
		if event.Appointment.Status == domain.AppointmentStatusCancelled {
			l.calendarPort.RemoveAppointment(ctx, event.StaffID, event.Appointment.ID)
			return nil
		}
		return l.calendarPort.ApplyAppointment(ctx, event.StaffID, event.Appointment)
	case EventTypeInvalidate:
		l.calendarPort.RemoveAppointment(ctx, event.StaffID, event.Appointment.ID)
		return nil
	default:
		return fmt.Errorf("unknown event type: %s", key.EventType)
	}
}

// Смена конфигурации арендатора инвалидирует кэши; актуальную конфигурацию
// подхватит новый движок — снимок движка неизменяем по контракту
func (l *AppointmentListener) processTenantEvent(ctx context.Context, key EventRoutingKey) error {
	if key.EventType != EventTypeInvalidate {
		return nil
	}

	if l.cachePort != nil {
		l.cachePort.InvalidateTenantSnapshot(ctx, l.cfg.Tenant.ID)
		l.cachePort.InvalidateSlotGrids(ctx)
	}

	l.logger.Info("tenant.config.invalidated", out.LogFields{
		"tenantId": l.cfg.Tenant.ID,
	})

	return nil
}

func (l *AppointmentListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}
