package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MetricType string

const (
	MetricSteps            MetricType = "steps"
	MetricHeartRate        MetricType = "heart_rate"
	MetricBloodPressure    MetricType = "blood_pressure"
	MetricBloodGlucose     MetricType = "blood_glucose"
	MetricWeight           MetricType = "weight"
	MetricHeight           MetricType = "height"
	MetricBMI              MetricType = "bmi"
	MetricBodyTemperature  MetricType = "body_temperature"
	MetricOxygenSaturation MetricType = "oxygen_saturation"
	MetricSleepDuration    MetricType = "sleep_duration"
	MetricCaloriesBurned   MetricType = "calories_burned"
	MetricWaterIntake      MetricType = "water_intake"
	MetricRespiratoryRate  MetricType = "respiratory_rate"
)

var defaultUnits = map[MetricType]string{
	MetricSteps:            "steps",
	MetricHeartRate:        "bpm",
	MetricBloodPressure:    "mmHg",
	MetricBloodGlucose:     "mg/dL",
	MetricWeight:           "kg",
	MetricHeight:           "cm",
	MetricBMI:              "kg/m2",
	MetricBodyTemperature:  "°C",
	MetricOxygenSaturation: "%",
	MetricSleepDuration:    "hours",
	MetricCaloriesBurned:   "kcal",
	MetricWaterIntake:      "ml",
	MetricRespiratoryRate:  "breaths/min",
}

func (t MetricType) IsValid() bool {
	_, ok := defaultUnits[t]
	return ok
}

// DefaultUnit returns the unit recorded when the writer supplies none.
func (t MetricType) DefaultUnit() string {
	if u, ok := defaultUnits[t]; ok {
		return u
	}
	return "unknown"
}

type MetricSource string

const (
	MetricSourceDevice     MetricSource = "device"
	MetricSourceManual     MetricSource = "manual"
	MetricSourceCalculated MetricSource = "calculated"
	MetricSourceImported   MetricSource = "imported"
)

func (s MetricSource) IsValid() bool {
	switch s {
	case MetricSourceDevice, MetricSourceManual, MetricSourceCalculated, MetricSourceImported:
		return true
	}
	return false
}

// NormalRange is an inclusive physiological range.
type NormalRange struct {
	Min float64
	Max float64
}

func (r NormalRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Blood pressure uses the 90-140 / 60-90 bounds for flagging.
var (
	SystolicRange  = NormalRange{Min: 90, Max: 140}
	DiastolicRange = NormalRange{Min: 60, Max: 90}
)

var scalarRanges = map[MetricType]NormalRange{
	MetricHeartRate:        {Min: 60, Max: 100},
	MetricBloodGlucose:     {Min: 70, Max: 140},
	MetricBodyTemperature:  {Min: 36.1, Max: 37.2},
	MetricOxygenSaturation: {Min: 95, Max: 100},
	MetricRespiratoryRate:  {Min: 12, Max: 20},
}

type BloodPressure struct {
	Systolic  float64 `json:"systolic"`
	Diastolic float64 `json:"diastolic"`
}

// DetectAbnormal classifies a metric value against the normal range table.
// Blood pressure is only checked when the value is a {systolic, diastolic}
// object; types without a range are never abnormal.
func DetectAbnormal(t MetricType, value json.RawMessage) bool {
	if t == MetricBloodPressure {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(value, &fields); err != nil {
			return false
		}
		if _, ok := fields["systolic"]; !ok {
			return false
		}
		if _, ok := fields["diastolic"]; !ok {
			return false
		}
		var bp BloodPressure
		if err := json.Unmarshal(value, &bp); err != nil {
			return false
		}
		return !SystolicRange.Contains(bp.Systolic) || !DiastolicRange.Contains(bp.Diastolic)
	}

	r, ok := scalarRanges[t]
	if !ok {
		return false
	}
	var v float64
	if err := json.Unmarshal(value, &v); err != nil {
		return false
	}
	return !r.Contains(v)
}

// HealthMetric is a single measurement for a patient.
type HealthMetric struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID    uuid.UUID                   `gorm:"type:uuid;not null;index:idx_metrics_patient_type_ts,priority:1" json:"patient_id"`
	UserID       uuid.UUID                   `gorm:"type:uuid;not null" json:"user_id"`
	MetricType   MetricType                  `gorm:"type:varchar(32);not null;index:idx_metrics_patient_type_ts,priority:2" json:"metric_type"`
	Value        datatypes.JSON              `gorm:"type:jsonb;not null" json:"value"`
	Unit         string                      `gorm:"type:varchar(32);not null" json:"unit"`
	Timestamp    time.Time                   `gorm:"not null;index:idx_metrics_patient_type_ts,priority:3,sort:desc" json:"timestamp"`
	Source       MetricSource                `gorm:"type:varchar(16);not null;default:'manual'" json:"source"`
	DeviceID     string                      `gorm:"type:varchar(128)" json:"device_id,omitempty"`
	QualityScore *int                        `json:"quality_score,omitempty"`
	IsAbnormal   bool                        `gorm:"not null;default:false" json:"is_abnormal"`
	Notes        string                      `gorm:"type:text" json:"notes,omitempty"`
	Tags         datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags"`
	RelationID   *uuid.UUID                  `gorm:"type:uuid" json:"relation_id,omitempty"`
	CreatedAt    time.Time                   `gorm:"autoCreateTime" json:"created_at"`
}

func (HealthMetric) TableName() string {
	return "health_metrics"
}

type HealthMetricFilter struct {
	PatientID  uuid.UUID
	MetricType MetricType
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}
