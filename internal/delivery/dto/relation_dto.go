package dto

import (
	"time"

	"healthtech-api/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

type CreateRelationRequest struct {
	PatientID         uuid.UUID           `json:"patient_id" validate:"required"`
	RelationType      string              `json:"relation_type" validate:"required,oneof=primary specialist consultant temporary"`
	Permissions       *entity.Permissions `json:"permissions"`
	AccessLevel       string              `json:"access_level" validate:"omitempty,oneof=full limited emergency_only"`
	ReasonForRelation string              `json:"reason_for_relation" validate:"omitempty,max=1000"`
	SpecialtyFocus    string              `json:"specialty_focus" validate:"omitempty,max=255"`
	Notes             string              `json:"notes" validate:"omitempty,max=2000"`
}

// Response DTOs

type RelationResponse struct {
	ID                uuid.UUID          `json:"id"`
	DoctorID          uuid.UUID          `json:"doctor_id"`
	PatientID         uuid.UUID          `json:"patient_id"`
	RelationType      string             `json:"relation_type"`
	Status            string             `json:"status"`
	Permissions       entity.Permissions `json:"permissions"`
	AccessLevel       string             `json:"access_level"`
	StartDate         *time.Time         `json:"start_date,omitempty"`
	EndDate           *time.Time         `json:"end_date,omitempty"`
	ReasonForRelation string             `json:"reason_for_relation,omitempty"`
	SpecialtyFocus    string             `json:"specialty_focus,omitempty"`
	Notes             string             `json:"notes,omitempty"`
	CreatedBy         uuid.UUID          `json:"created_by"`
	LastUpdatedBy     *uuid.UUID         `json:"last_updated_by,omitempty"`
	Doctor            *DoctorSummary     `json:"doctor,omitempty"`
	Patient           *PatientSummary    `json:"patient,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

type RelationListResponse struct {
	Relations []RelationResponse `json:"relations"`
	Total     int                `json:"total"`
}
