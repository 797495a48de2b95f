package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/becca-afk/first-class-perfume/pkg/logging"
)

// Publisher emits order lifecycle events. Publishing is fire-and-forget:
// a broker failure never fails the request that produced the event.
type Publisher interface {
	Publish(ctx context.Context, ev OrderEvent)
	Close() error
}

type KafkaPublisher struct {
	w *kafka.Writer
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  TopicOrderEvents,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev OrderEvent) {
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	value, err := json.Marshal(ev)
	if err != nil {
		logging.FromContext(ctx).Error("marshal order event", "error", err)
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err = p.w.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(ev.OrderID), 10)),
		Value: value,
	})
	if err != nil {
		logging.FromContext(ctx).Error("publish order event",
			"type", ev.Type, "order_id", ev.OrderID, "error", err)
	}
}

func (p *KafkaPublisher) Close() error { return p.w.Close() }

// NoopPublisher is used when KAFKA_BROKERS is not configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, OrderEvent) {}
func (NoopPublisher) Close() error                        { return nil }
