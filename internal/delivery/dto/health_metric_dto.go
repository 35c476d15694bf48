package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// RecordHealthMetricRequest omits PatientID when a patient records for themself.
type RecordHealthMetricRequest struct {
	PatientID    *uuid.UUID      `json:"patient_id"`
	MetricType   string          `json:"metric_type" validate:"required,oneof=steps heart_rate blood_pressure blood_glucose weight height bmi body_temperature oxygen_saturation sleep_duration calories_burned water_intake respiratory_rate"`
	Value        json.RawMessage `json:"value" validate:"required"`
	Unit         string          `json:"unit" validate:"omitempty,max=32"`
	Timestamp    *time.Time      `json:"timestamp"`
	Source       string          `json:"source" validate:"omitempty,oneof=device manual calculated imported"`
	DeviceID     string          `json:"device_id" validate:"omitempty,max=128"`
	QualityScore *int            `json:"quality_score" validate:"omitempty,gte=0,lte=100"`
	Notes        string          `json:"notes" validate:"omitempty,max=2000"`
	Tags         []string        `json:"tags" validate:"omitempty,max=20"`
}

type HealthMetricQuery struct {
	PatientID  *uuid.UUID
	MetricType string
	From       *time.Time
	To         *time.Time
	PageRequest
}

// MetricTrendQuery defaults to the last 30 days when From or To is missing.
type MetricTrendQuery struct {
	PatientID  *uuid.UUID
	MetricType string
	From       *time.Time
	To         *time.Time
}

// Response DTOs

type HealthMetricResponse struct {
	ID           uuid.UUID       `json:"id"`
	PatientID    uuid.UUID       `json:"patient_id"`
	UserID       uuid.UUID       `json:"user_id"`
	MetricType   string          `json:"metric_type"`
	Value        json.RawMessage `json:"value"`
	Unit         string          `json:"unit"`
	Timestamp    time.Time       `json:"timestamp"`
	Source       string          `json:"source"`
	DeviceID     string          `json:"device_id,omitempty"`
	QualityScore *int            `json:"quality_score,omitempty"`
	IsAbnormal   bool            `json:"is_abnormal"`
	Notes        string          `json:"notes,omitempty"`
	Tags         []string        `json:"tags"`
	RelationID   *uuid.UUID      `json:"relation_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

type HealthMetricListResponse struct {
	Metrics []HealthMetricResponse `json:"metrics"`
	Total   int64                  `json:"total"`
}

type MetricTrendPoint struct {
	Value     json.RawMessage `json:"value"`
	Timestamp time.Time       `json:"timestamp"`
}

type MetricTrendResponse struct {
	PatientID  uuid.UUID          `json:"patient_id"`
	MetricType string             `json:"metric_type"`
	Unit       string             `json:"unit"`
	From       time.Time          `json:"from"`
	To         time.Time          `json:"to"`
	Points     []MetricTrendPoint `json:"points"`
}
