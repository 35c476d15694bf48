package dto

import (
	"time"

	"healthtech-api/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

// UpdatePatientProfileRequest only touches the fields that are present.
type UpdatePatientProfileRequest struct {
	FullName              *string                    `json:"full_name" validate:"omitempty,min=2,max=255"`
	Phone                 *string                    `json:"phone" validate:"omitempty,min=7,max=32"`
	Address               *string                    `json:"address" validate:"omitempty,max=500"`
	Weight                *float64                   `json:"weight" validate:"omitempty,gt=0,lte=500"`
	Height                *float64                   `json:"height" validate:"omitempty,gt=0,lte=300"`
	BloodType             *string                    `json:"blood_type" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Allergies             *[]entity.Allergy          `json:"allergies"`
	ChronicConditions     *[]entity.ChronicCondition `json:"chronic_conditions"`
	CareModeEnabled       *bool                      `json:"care_mode_enabled"`
	PreferredUnitSystem   *string                    `json:"preferred_unit_system" validate:"omitempty,oneof=metric imperial"`
	SmokingStatus         *string                    `json:"smoking_status" validate:"omitempty,oneof=never former current"`
	AlcoholConsumption    *string                    `json:"alcohol_consumption" validate:"omitempty,oneof=none occasional moderate heavy"`
	ExerciseFrequency     *string                    `json:"exercise_frequency" validate:"omitempty,oneof=sedentary light moderate active"`
	MedicalHistorySummary *string                    `json:"medical_history_summary" validate:"omitempty,max=5000"`
	DataSharingConsent    *bool                      `json:"data_sharing_consent"`
}

// AdminUpdatePatientRequest is the clinical subset of a profile an admin may edit.
type AdminUpdatePatientRequest struct {
	Weight              *float64   `json:"weight" validate:"omitempty,gt=0,lte=500"`
	Height              *float64   `json:"height" validate:"omitempty,gt=0,lte=300"`
	BloodType           *string    `json:"blood_type" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	CareModeEnabled     *bool      `json:"care_mode_enabled"`
	PreferredUnitSystem *string    `json:"preferred_unit_system" validate:"omitempty,oneof=metric imperial"`
	PrimaryDoctorID     *uuid.UUID `json:"primary_doctor_id"`
}

// Response DTOs

type PatientProfileResponse struct {
	ID                    uuid.UUID                 `json:"id"`
	UserID                uuid.UUID                 `json:"user_id"`
	PatientCode           string                    `json:"patient_code"`
	FullName              string                    `json:"full_name"`
	Email                 string                    `json:"email"`
	Age                   int                       `json:"age"`
	Gender                string                    `json:"gender"`
	Weight                *float64                  `json:"weight,omitempty"`
	Height                *float64                  `json:"height,omitempty"`
	BMI                   *float64                  `json:"bmi,omitempty"`
	BloodType             string                    `json:"blood_type,omitempty"`
	Allergies             []entity.Allergy          `json:"allergies"`
	ChronicConditions     []entity.ChronicCondition `json:"chronic_conditions"`
	CareModeEnabled       bool                      `json:"care_mode_enabled"`
	PreferredUnitSystem   string                    `json:"preferred_unit_system"`
	PrimaryDoctorID       *uuid.UUID                `json:"primary_doctor_id,omitempty"`
	SmokingStatus         string                    `json:"smoking_status,omitempty"`
	AlcoholConsumption    string                    `json:"alcohol_consumption,omitempty"`
	ExerciseFrequency     string                    `json:"exercise_frequency,omitempty"`
	MedicalHistorySummary string                    `json:"medical_history_summary,omitempty"`
	DataSharingConsent    bool                      `json:"data_sharing_consent"`
	CreatedAt             time.Time                 `json:"created_at"`
	UpdatedAt             time.Time                 `json:"updated_at"`
}

// PatientSummary is the patient shown to a doctor in relation listings.
type PatientSummary struct {
	ID          uuid.UUID `json:"id"`
	PatientCode string    `json:"patient_code"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email,omitempty"`
	Age         int       `json:"age,omitempty"`
	Gender      string    `json:"gender,omitempty"`
}

type PatientListResponse struct {
	Patients []PatientProfileResponse `json:"patients"`
	Total    int64                    `json:"total"`
}
