package kafka

import (
	"github.com/segmentio/kafka-go"
)

// NewWriter builds the producer used by the outbox dispatcher.
func NewWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}
