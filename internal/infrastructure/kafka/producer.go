package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/example/ec-storefront/internal/event"
	"github.com/segmentio/kafka-go"
)

var _ event.Publisher = (*Producer)(nil)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &Producer{writer: writer}
}

// Publish writes value as JSON. Messages with the same key land on the same partition.
func (p *Producer) Publish(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
}

// PublishEvent keys the message by aggregate so one order's events stay in order
func (p *Producer) PublishEvent(ctx context.Context, e event.Event) error {
	return p.Publish(ctx, e.AggregateID, e)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
