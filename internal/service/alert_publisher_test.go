package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"healthtech-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestLogAlertPublisher(t *testing.T) {
	log, hook := test.NewNullLogger()
	pub := NewLogAlertPublisher(log)

	metric := &entity.HealthMetric{
		ID:         uuid.New(),
		PatientID:  uuid.New(),
		MetricType: entity.MetricHeartRate,
		Value:      datatypes.JSON(`55`),
	}
	require.NoError(t, pub.PublishAbnormal(context.Background(), metric))
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "55", hook.LastEntry().Data["value"])
}

func TestNewMetricAlert(t *testing.T) {
	ts := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
	metric := &entity.HealthMetric{
		ID:         uuid.New(),
		PatientID:  uuid.New(),
		UserID:     uuid.New(),
		MetricType: entity.MetricBloodPressure,
		Value:      datatypes.JSON(`{"systolic":150,"diastolic":95}`),
		Unit:       "mmHg",
		Timestamp:  ts,
	}
	payload, err := json.Marshal(NewMetricAlert(metric))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"metric_id": "`+metric.ID.String()+`",
		"patient_id": "`+metric.PatientID.String()+`",
		"metric_type": "blood_pressure",
		"value": {"systolic":150,"diastolic":95},
		"unit": "mmHg",
		"timestamp": "2026-02-01T09:30:00Z",
		"recorded_by": "`+metric.UserID.String()+`"
	}`, string(payload))
}
