package sink

import (
	"context"
	"fmt"

	"github.com/ehealth-bench/datagen/internal/pipeline"
	"github.com/ehealth-bench/datagen/pkg/kafka"
)

const kafkaBatchSize = 100

// Kafka publishes every generated document to a topic, keyed by docId, for
// streaming consumers that index the corpus as it is produced.
type Kafka struct {
	producer *kafka.Producer
}

// NewKafka creates the Kafka sink on an existing producer.
func NewKafka(producer *kafka.Producer) *Kafka {
	return &Kafka{producer: producer}
}

func (k *Kafka) Name() string { return "kafka" }

func (k *Kafka) Write(ctx context.Context, res *pipeline.Result) error {
	events := make([]kafka.Event, 0, kafkaBatchSize)
	for _, doc := range res.Documents {
		events = append(events, kafka.Event{Key: doc.DocID, Value: doc})
		if len(events) == kafkaBatchSize {
			if err := k.producer.PublishBatch(ctx, events); err != nil {
				return fmt.Errorf("publishing document batch: %w", err)
			}
			events = events[:0]
		}
	}
	if len(events) > 0 {
		if err := k.producer.PublishBatch(ctx, events); err != nil {
			return fmt.Errorf("publishing final batch: %w", err)
		}
	}
	return nil
}
