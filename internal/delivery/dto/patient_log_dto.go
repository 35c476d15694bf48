package dto

import (
	"time"

	"healthtech-api/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

type CreateSymptomLogRequest struct {
	SymptomType       string                `json:"symptom_type" validate:"required,max=128"`
	Severity          int                   `json:"severity" validate:"required,gte=1,lte=10"`
	StartTime         time.Time             `json:"start_time" validate:"required"`
	EndTime           *time.Time            `json:"end_time"`
	Duration          string                `json:"duration" validate:"omitempty,max=32"`
	Location          string                `json:"location" validate:"omitempty,max=128"`
	Triggers          []string              `json:"triggers"`
	ReliefMethods     []entity.ReliefMethod `json:"relief_methods"`
	Notes             string                `json:"notes" validate:"omitempty,max=2000"`
	ImpactOnDailyLife string                `json:"impact_on_daily_life" validate:"omitempty,oneof=none mild moderate severe"`
	Pattern           string                `json:"pattern" validate:"omitempty,oneof=constant intermittent worsening improving"`
}

type CreateHealthGoalRequest struct {
	GoalType     string    `json:"goal_type" validate:"required,oneof=weight_loss fitness nutrition medication sleep other"`
	Title        string    `json:"title" validate:"required,max=255"`
	Description  string    `json:"description" validate:"omitempty,max=2000"`
	TargetValue  float64   `json:"target_value" validate:"gte=0"`
	CurrentValue float64   `json:"current_value" validate:"gte=0"`
	StartDate    time.Time `json:"start_date"`
	TargetDate   time.Time `json:"target_date" validate:"required"`
	Frequency    string    `json:"frequency" validate:"omitempty,oneof=daily weekly monthly"`
	Priority     string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	Notes        string    `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateGoalProgressRequest struct {
	CurrentValue float64 `json:"current_value" validate:"gte=0"`
}

// Response DTOs

type SymptomLogResponse struct {
	ID                uuid.UUID             `json:"id"`
	PatientID         uuid.UUID             `json:"patient_id"`
	SymptomType       string                `json:"symptom_type"`
	Severity          int                   `json:"severity"`
	StartTime         time.Time             `json:"start_time"`
	EndTime           *time.Time            `json:"end_time,omitempty"`
	Duration          string                `json:"duration,omitempty"`
	Location          string                `json:"location,omitempty"`
	Triggers          []string              `json:"triggers"`
	ReliefMethods     []entity.ReliefMethod `json:"relief_methods"`
	Notes             string                `json:"notes,omitempty"`
	ImpactOnDailyLife string                `json:"impact_on_daily_life,omitempty"`
	Pattern           string                `json:"pattern,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
}

type SymptomLogListResponse struct {
	Logs  []SymptomLogResponse `json:"logs"`
	Total int64                `json:"total"`
}

type HealthGoalResponse struct {
	ID                 uuid.UUID `json:"id"`
	PatientID          uuid.UUID `json:"patient_id"`
	GoalType           string    `json:"goal_type"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	TargetValue        float64   `json:"target_value"`
	CurrentValue       float64   `json:"current_value"`
	StartDate          time.Time `json:"start_date"`
	TargetDate         time.Time `json:"target_date"`
	Frequency          string    `json:"frequency"`
	Priority           string    `json:"priority"`
	IsActive           bool      `json:"is_active"`
	IsCompleted        bool      `json:"is_completed"`
	ProgressPercentage float64   `json:"progress_percentage"`
	DaysRemaining      int       `json:"days_remaining"`
	Notes              string    `json:"notes,omitempty"`
	LastUpdated        time.Time `json:"last_updated"`
}

type HealthGoalListResponse struct {
	Goals []HealthGoalResponse `json:"goals"`
	Total int                  `json:"total"`
}
