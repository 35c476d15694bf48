package messaging

import (
	"time"

	"healthtech-api/config"

	"github.com/segmentio/kafka-go"
)

// NewAlertWriter returns a writer for abnormal metric alerts, or nil when no
// brokers are configured.
func NewAlertWriter(cfg config.KafkaConfig) *kafka.Writer {
	if len(cfg.Brokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.AlertTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}
