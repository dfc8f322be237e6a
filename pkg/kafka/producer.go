package kafka

import (
	"context"
	"log"

	"github.com/segmentio/kafka-go"
)

type Producer struct {
	writer *kafka.Writer
}

// NewProducer returns nil when no broker is configured; services publish
// through Producer.Publish which tolerates a nil receiver.
func NewProducer(brokerURL, topic string) *Producer {
	if brokerURL == "" {
		return nil
	}
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokerURL),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{writer: writer}
}

func (p *Producer) Publish(ctx context.Context, key string, message []byte) error {
	if p == nil {
		return nil
	}
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: message,
	})
	if err != nil {
		log.Printf("kafka publish error: %v", err)
	}
	return err
}

func (p *Producer) Close() {
	if p != nil {
		_ = p.writer.Close()
	}
}
