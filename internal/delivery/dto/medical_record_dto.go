package dto

import (
	"time"

	"healthtech-api/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

type CreateMedicalRecordRequest struct {
	PatientID            uuid.UUID             `json:"patient_id" validate:"required"`
	VisitDate            *time.Time            `json:"visit_date"`
	VisitType            string                `json:"visit_type" validate:"required,oneof=consultation follow_up emergency routine_checkup vaccination lab_test"`
	Symptoms             []entity.Symptom      `json:"symptoms"`
	Diagnosis            entity.Diagnosis      `json:"diagnosis"`
	Prescriptions        []entity.Prescription `json:"prescriptions"`
	TreatmentPlan        entity.TreatmentPlan  `json:"treatment_plan"`
	FollowUpDate         *time.Time            `json:"follow_up_date"`
	FollowUpInstructions string                `json:"follow_up_instructions" validate:"omitempty,max=2000"`
	Notes                string                `json:"notes" validate:"omitempty,max=5000"`
	Recommendations      string                `json:"recommendations" validate:"omitempty,max=5000"`
}

type MedicalRecordQuery struct {
	PatientID *uuid.UUID
	Status    string
	PageRequest
}

// Response DTOs

type MedicalRecordResponse struct {
	ID                   uuid.UUID             `json:"id"`
	PatientID            uuid.UUID             `json:"patient_id"`
	DoctorID             *uuid.UUID            `json:"doctor_id,omitempty"`
	RelationID           *uuid.UUID            `json:"relation_id,omitempty"`
	VisitDate            time.Time             `json:"visit_date"`
	VisitType            string                `json:"visit_type"`
	Symptoms             []entity.Symptom      `json:"symptoms"`
	Diagnosis            entity.Diagnosis      `json:"diagnosis"`
	Prescriptions        []entity.Prescription `json:"prescriptions"`
	TreatmentPlan        entity.TreatmentPlan  `json:"treatment_plan"`
	FollowUpDate         *time.Time            `json:"follow_up_date,omitempty"`
	FollowUpInstructions string                `json:"follow_up_instructions,omitempty"`
	RecordStatus         string                `json:"record_status"`
	Notes                string                `json:"notes,omitempty"`
	Recommendations      string                `json:"recommendations,omitempty"`
	CreatedBy            uuid.UUID             `json:"created_by"`
	LastUpdatedBy        *uuid.UUID            `json:"last_updated_by,omitempty"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
}

type MedicalRecordListResponse struct {
	Records []MedicalRecordResponse `json:"records"`
	Total   int64                   `json:"total"`
}
