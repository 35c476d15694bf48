package service

import (
	"context"
	"encoding/json"
	"time"

	"healthtech-api/internal/domain/entity"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// MetricAlert is the payload published for an abnormal reading.
type MetricAlert struct {
	MetricID   string            `json:"metric_id"`
	PatientID  string            `json:"patient_id"`
	MetricType entity.MetricType `json:"metric_type"`
	Value      json.RawMessage   `json:"value"`
	Unit       string            `json:"unit"`
	Timestamp  time.Time         `json:"timestamp"`
	RecordedBy string            `json:"recorded_by"`
}

func NewMetricAlert(m *entity.HealthMetric) MetricAlert {
	return MetricAlert{
		MetricID:   m.ID.String(),
		PatientID:  m.PatientID.String(),
		MetricType: m.MetricType,
		Value:      json.RawMessage(m.Value),
		Unit:       m.Unit,
		Timestamp:  m.Timestamp,
		RecordedBy: m.UserID.String(),
	}
}

// AlertPublisher hands abnormal metrics to downstream alerting.
type AlertPublisher interface {
	PublishAbnormal(ctx context.Context, metric *entity.HealthMetric) error
}

type kafkaAlertPublisher struct {
	writer *kafka.Writer
	log    *logrus.Logger
}

func NewKafkaAlertPublisher(writer *kafka.Writer, log *logrus.Logger) AlertPublisher {
	return &kafkaAlertPublisher{writer: writer, log: log}
}

// PublishAbnormal keys messages by patient so one patient's alerts stay ordered.
func (p *kafkaAlertPublisher) PublishAbnormal(ctx context.Context, metric *entity.HealthMetric) error {
	payload, err := json.Marshal(NewMetricAlert(metric))
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(metric.PatientID.String()),
		Value: payload,
		Time:  metric.Timestamp,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Warnf("Failed to publish alert for metric %s: %+v", metric.ID, err)
		return err
	}
	return nil
}

type logAlertPublisher struct {
	log *logrus.Logger
}

// NewLogAlertPublisher is used when no broker is configured.
func NewLogAlertPublisher(log *logrus.Logger) AlertPublisher {
	return &logAlertPublisher{log: log}
}

func (p *logAlertPublisher) PublishAbnormal(_ context.Context, metric *entity.HealthMetric) error {
	p.log.WithFields(logrus.Fields{
		"metric_id":   metric.ID,
		"patient_id":  metric.PatientID,
		"metric_type": metric.MetricType,
		"value":       string(metric.Value),
	}).Warn("Abnormal health metric recorded")
	return nil
}
