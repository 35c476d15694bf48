package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectAbnormal(t *testing.T) {
	cases := []struct {
		name   string
		metric MetricType
		value  string
		want   bool
	}{
		{"low heart rate", MetricHeartRate, `55`, true},
		{"normal heart rate", MetricHeartRate, `75`, false},
		{"heart rate at bound", MetricHeartRate, `100`, false},
		{"high blood pressure", MetricBloodPressure, `{"systolic":150,"diastolic":95}`, true},
		{"normal blood pressure", MetricBloodPressure, `{"systolic":120,"diastolic":80}`, false},
		{"diastolic only high", MetricBloodPressure, `{"systolic":130,"diastolic":91}`, true},
		{"scalar blood pressure ignored", MetricBloodPressure, `150`, false},
		{"partial blood pressure ignored", MetricBloodPressure, `{"systolic":150}`, false},
		{"high glucose", MetricBloodGlucose, `141`, true},
		{"fever", MetricBodyTemperature, `38.2`, true},
		{"normal temperature", MetricBodyTemperature, `36.6`, false},
		{"low saturation", MetricOxygenSaturation, `92`, true},
		{"fast breathing", MetricRespiratoryRate, `24`, true},
		{"steps never abnormal", MetricSteps, `100000`, false},
		{"unknown type", MetricType("mood"), `1`, false},
		{"non numeric value", MetricHeartRate, `"fast"`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectAbnormal(tc.metric, json.RawMessage(tc.value)))
		})
	}
}

func TestMetricType_DefaultUnit(t *testing.T) {
	assert.Equal(t, "bpm", MetricHeartRate.DefaultUnit())
	assert.Equal(t, "mmHg", MetricBloodPressure.DefaultUnit())
	assert.Equal(t, "unknown", MetricType("mood").DefaultUnit())
	assert.True(t, MetricWaterIntake.IsValid())
	assert.False(t, MetricType("mood").IsValid())
}
