package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ImpactNone     = "none"
	ImpactMild     = "mild"
	ImpactModerate = "moderate"
	ImpactSevere   = "severe"

	PatternConstant     = "constant"
	PatternIntermittent = "intermittent"
	PatternWorsening    = "worsening"
	PatternImproving    = "improving"
)

type ReliefMethod struct {
	Method        string `json:"method"`
	Effectiveness int    `json:"effectiveness,omitempty"`
}

type SymptomLog struct {
	ID                uuid.UUID                         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID         uuid.UUID                         `gorm:"type:uuid;not null;index" json:"patient_id"`
	SymptomType       string                            `gorm:"type:varchar(128);not null;index" json:"symptom_type"`
	Severity          int                               `gorm:"not null" json:"severity"`
	StartTime         time.Time                         `gorm:"not null" json:"start_time"`
	EndTime           *time.Time                        `json:"end_time,omitempty"`
	Duration          string                            `gorm:"type:varchar(32)" json:"duration,omitempty"`
	Location          string                            `gorm:"type:varchar(128)" json:"location,omitempty"`
	Triggers          datatypes.JSONSlice[string]       `gorm:"type:jsonb" json:"triggers"`
	ReliefMethods     datatypes.JSONSlice[ReliefMethod] `gorm:"type:jsonb" json:"relief_methods"`
	Notes             string                            `gorm:"type:text" json:"notes,omitempty"`
	ImpactOnDailyLife string                            `gorm:"type:varchar(16)" json:"impact_on_daily_life,omitempty"`
	Pattern           string                            `gorm:"type:varchar(16)" json:"pattern,omitempty"`
	CreatedAt         time.Time                         `gorm:"autoCreateTime" json:"created_at"`
}

func (SymptomLog) TableName() string {
	return "symptom_logs"
}

// ComputeDuration fills Duration as "Xh Ym" when both ends are known and the
// caller did not supply one.
func (s *SymptomLog) ComputeDuration() {
	if s.EndTime == nil || s.Duration != "" {
		return
	}
	s.Duration = FormatDuration(s.EndTime.Sub(s.StartTime))
}

func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
