package repository

import (
	"context"

	"AstroFeed/internal/domain/models"
	"AstroFeed/internal/domain/repository"
	"AstroFeed/pkg/kafka"
)

// KafkaFeedPublisher pushes generated feeds to a Kafka topic, keyed by
// mode so each mode's documents stay ordered within a partition.
type KafkaFeedPublisher struct {
	producer *kafka.Producer
	topic    string
}

// NewKafkaFeedPublisher creates a publisher over an existing producer.
func NewKafkaFeedPublisher(producer *kafka.Producer, topic string) *KafkaFeedPublisher {
	return &KafkaFeedPublisher{producer: producer, topic: topic}
}

var _ repository.FeedPublisher = (*KafkaFeedPublisher)(nil)

// Publish sends the feed document.
func (p *KafkaFeedPublisher) Publish(ctx context.Context, feed *models.Feed) error {
	return p.producer.Publish(ctx, p.topic, []byte(feed.Mode), feed)
}
