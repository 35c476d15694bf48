package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BloodType string

const (
	BloodTypeAPos  BloodType = "A+"
	BloodTypeANeg  BloodType = "A-"
	BloodTypeBPos  BloodType = "B+"
	BloodTypeBNeg  BloodType = "B-"
	BloodTypeABPos BloodType = "AB+"
	BloodTypeABNeg BloodType = "AB-"
	BloodTypeOPos  BloodType = "O+"
	BloodTypeONeg  BloodType = "O-"
)

// Lifestyle enums
const (
	SmokingNever   = "never"
	SmokingFormer  = "former"
	SmokingCurrent = "current"

	AlcoholNone       = "none"
	AlcoholOccasional = "occasional"
	AlcoholModerate   = "moderate"
	AlcoholHeavy      = "heavy"

	ExerciseSedentary = "sedentary"
	ExerciseLight     = "light"
	ExerciseModerate  = "moderate"
	ExerciseActive    = "active"

	UnitSystemMetric   = "metric"
	UnitSystemImperial = "imperial"
)

type Allergy struct {
	Allergen string `json:"allergen"`
	Severity string `json:"severity,omitempty"`
	Reaction string `json:"reaction,omitempty"`
}

type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
}

type ChronicCondition struct {
	Condition     string       `json:"condition"`
	DiagnosedDate *time.Time   `json:"diagnosed_date,omitempty"`
	Status        string       `json:"status,omitempty"`
	Medications   []Medication `json:"medications"`
}

// Patient is the health profile owned 1:1 by a User. Age is read from the
// owning user's date of birth.
type Patient struct {
	ID                    uuid.UUID                             `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID                uuid.UUID                             `gorm:"type:uuid;not null;uniqueIndex:uq_patients_user_id" json:"user_id"`
	PatientCode           string                                `gorm:"type:varchar(32);not null;uniqueIndex:uq_patients_code" json:"patient_code"`
	Weight                *float64                              `json:"weight,omitempty"`
	Height                *float64                              `json:"height,omitempty"`
	BloodType             BloodType                             `gorm:"type:varchar(4)" json:"blood_type,omitempty"`
	Allergies             datatypes.JSONSlice[Allergy]          `gorm:"type:jsonb" json:"allergies"`
	ChronicConditions     datatypes.JSONSlice[ChronicCondition] `gorm:"type:jsonb" json:"chronic_conditions"`
	CareModeEnabled       bool                                  `gorm:"not null;default:false" json:"care_mode_enabled"`
	PreferredUnitSystem   string                                `gorm:"type:varchar(16);not null;default:'metric'" json:"preferred_unit_system"`
	PrimaryDoctorID       *uuid.UUID                            `gorm:"type:uuid" json:"primary_doctor_id,omitempty"`
	SmokingStatus         string                                `gorm:"type:varchar(16)" json:"smoking_status,omitempty"`
	AlcoholConsumption    string                                `gorm:"type:varchar(16)" json:"alcohol_consumption,omitempty"`
	ExerciseFrequency     string                                `gorm:"type:varchar(16)" json:"exercise_frequency,omitempty"`
	MedicalHistorySummary string                                `gorm:"type:text" json:"medical_history_summary,omitempty"`
	DataSharingConsent    bool                                  `gorm:"not null;default:false" json:"data_sharing_consent"`
	CreatedAt             time.Time                             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time                             `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// SetWeight stores kilograms rounded to one decimal place.
func (p *Patient) SetWeight(kg float64) {
	w := roundTo(kg, 1)
	p.Weight = &w
}

// SetHeight stores centimetres rounded to one decimal place.
func (p *Patient) SetHeight(cm float64) {
	h := roundTo(cm, 1)
	p.Height = &h
}

// BMI returns weight / (height in metres)^2 rounded to two decimals, or nil
// when either measurement is missing.
func (p *Patient) BMI() *float64 {
	if p.Weight == nil || p.Height == nil || *p.Height <= 0 {
		return nil
	}
	m := *p.Height / 100
	bmi := roundTo(*p.Weight/(m*m), 2)
	return &bmi
}

// PatientFilter narrows admin patient listings.
type PatientFilter struct {
	Search string
	Limit  int
	Offset int
}
