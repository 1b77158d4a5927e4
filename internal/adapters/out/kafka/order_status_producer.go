// Package kafka publishes order lifecycle events to a Kafka topic so
// downstream consumers (reporting, supplier portals) can follow status
// changes without polling the database.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"procurement/internal/core/ports"

	"github.com/IBM/sarama"
)

// OrderStatusProducer publishes OrderStatusChanged events as JSON messages
// keyed by order ID, so all events of one order land on the same partition
// in order.
type OrderStatusProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewOrderStatusProducer creates a synchronous producer for status events.
// Acks from all in-sync replicas are required before a publish returns.
func NewOrderStatusProducer(brokers []string, topic string) (*OrderStatusProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return &OrderStatusProducer{
		producer: producer,
		topic:    topic,
	}, nil
}

// orderStatusChangedMessage is the wire shape of one status change.
type orderStatusChangedMessage struct {
	OrderID       string    `json:"orderId"`
	OrderNumber   string    `json:"orderNumber"`
	MasterOrderID *string   `json:"masterOrderId,omitempty"`
	Status        string    `json:"status"`
	ChangedBy     string    `json:"changedBy"`
	ChangedAt     time.Time `json:"changedAt"`
}

// PublishOrderStatusChanged sends one status-change event and waits for the
// broker ack.
func (p *OrderStatusProducer) PublishOrderStatusChanged(_ context.Context, event ports.OrderStatusChangedEvent) error {
	message := orderStatusChangedMessage{
		OrderID:     event.OrderID.String(),
		OrderNumber: event.OrderNumber,
		Status:      event.Status.String(),
		ChangedBy:   event.ChangedBy.String(),
		ChangedAt:   event.ChangedAt,
	}
	if event.MasterOrderID != nil {
		masterID := event.MasterOrderID.String()
		message.MasterOrderID = &masterID
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal status event: %w", err)
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(message.OrderID),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("send status event for order %s: %w", message.OrderNumber, err)
	}

	return nil
}

// Close shuts the underlying producer down.
func (p *OrderStatusProducer) Close() error {
	return p.producer.Close()
}
