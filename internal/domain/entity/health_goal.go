package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type GoalType string

const (
	GoalTypeWeightLoss GoalType = "weight_loss"
	GoalTypeFitness    GoalType = "fitness"
	GoalTypeNutrition  GoalType = "nutrition"
	GoalTypeMedication GoalType = "medication"
	GoalTypeSleep      GoalType = "sleep"
	GoalTypeOther      GoalType = "other"
)

func (g GoalType) IsValid() bool {
	switch g {
	case GoalTypeWeightLoss, GoalTypeFitness, GoalTypeNutrition, GoalTypeMedication, GoalTypeSleep, GoalTypeOther:
		return true
	}
	return false
}

type HealthGoal struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID          uuid.UUID `gorm:"type:uuid;not null;index:idx_goals_patient_active,priority:1" json:"patient_id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	GoalType           GoalType  `gorm:"type:varchar(16);not null" json:"goal_type"`
	Title              string    `gorm:"type:varchar(255);not null" json:"title"`
	Description        string    `gorm:"type:text" json:"description,omitempty"`
	TargetValue        float64   `gorm:"not null" json:"target_value"`
	CurrentValue       float64   `gorm:"not null;default:0" json:"current_value"`
	StartDate          time.Time `gorm:"not null" json:"start_date"`
	TargetDate         time.Time `gorm:"not null;index" json:"target_date"`
	Frequency          string    `gorm:"type:varchar(16);not null;default:'daily'" json:"frequency"`
	Priority           string    `gorm:"type:varchar(16);not null;default:'medium'" json:"priority"`
	IsActive           bool      `gorm:"not null;default:true;index:idx_goals_patient_active,priority:2" json:"is_active"`
	ProgressPercentage float64   `gorm:"not null;default:0" json:"progress_percentage"`
	LastUpdated        time.Time `json:"last_updated"`
	Notes              string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (HealthGoal) TableName() string {
	return "health_goals"
}

// UpdateProgress records a new current value; progress is clamped to 0-100.
func (g *HealthGoal) UpdateProgress(value float64, at time.Time) {
	g.CurrentValue = value
	g.LastUpdated = at
	if g.TargetValue == 0 {
		g.ProgressPercentage = 0
		return
	}
	pct := value / g.TargetValue * 100
	g.ProgressPercentage = math.Round(math.Max(0, math.Min(100, pct))*100) / 100
}

func (g *HealthGoal) IsCompleted() bool {
	return g.ProgressPercentage >= 100
}

// DaysRemaining rounds up partial days; negative once the target date passed.
func (g *HealthGoal) DaysRemaining(now time.Time) int {
	return int(math.Ceil(g.TargetDate.Sub(now).Hours() / 24))
}
