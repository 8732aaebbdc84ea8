package utils

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/handson-platform/handson-backend/config"
)

var activityWriter *kafka.Writer

// InitializeKafka wires the activity stream producer. Kafka is optional:
// when no brokers are configured the producer stays nil and publishes
// become no-ops.
func InitializeKafka(cfg *config.Config) {
	if len(cfg.KafkaBrokers) == 0 {
		log.Println("Kafka brokers not configured, activity stream disabled")
		return
	}

	activityWriter = &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBrokers...),
		Topic:    cfg.KafkaActivityTopic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Printf("Kafka producer ready on topic %s", cfg.KafkaActivityTopic)
}

// PublishActivity emits one message keyed by user id onto the activity topic.
func PublishActivity(ctx context.Context, userID string, payload interface{}) error {
	if activityWriter == nil {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return activityWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(userID),
		Value: data,
	})
}

// NewActivityReader builds a consumer-group reader over the activity topic.
func NewActivityReader(cfg *config.Config, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaActivityTopic,
		GroupID: groupID,
	})
}
