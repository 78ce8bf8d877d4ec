package events

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"

	"resto-dashboard/internal/order"
)

// KafkaPublisher emits submitted-order events keyed by table so downstream
// consumers see one table's orders in sequence.
type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) PublishOrderSubmitted(ctx context.Context, event order.SubmittedEvent) error {
	payload, _ := json.Marshal(event)
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(event.TableID)),
		Value: payload,
	})
}

var _ order.EventPublisher = (*KafkaPublisher)(nil)
