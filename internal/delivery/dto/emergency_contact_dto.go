package dto

import (
	"time"

	"healthtech-api/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

type CreateEmergencyContactRequest struct {
	FullName               string                `json:"full_name" validate:"required,min=2,max=255"`
	Relationship           string                `json:"relationship" validate:"required,oneof=spouse parent child sibling friend relative caregiver other"`
	Phone                  string                `json:"phone" validate:"required,phone"`
	Email                  string                `json:"email" validate:"omitempty,email"`
	Address                entity.ContactAddress `json:"address"`
	IsPrimary              bool                  `json:"is_primary"`
	NotificationsEnabled   *bool                 `json:"notifications_enabled"`
	PreferredContactMethod string                `json:"preferred_contact_method" validate:"omitempty,oneof=phone sms email whatsapp"`
	CanViewMedicalInfo     bool                  `json:"can_view_medical_info"`
	CanMakeDecisions       bool                  `json:"can_make_decisions"`
	Notes                  string                `json:"notes" validate:"omitempty,max=2000"`
}

// Response DTOs

type EmergencyContactResponse struct {
	ID                     uuid.UUID             `json:"id"`
	PatientID              uuid.UUID             `json:"patient_id"`
	FullName               string                `json:"full_name"`
	Relationship           string                `json:"relationship"`
	Phone                  string                `json:"phone"`
	Email                  string                `json:"email,omitempty"`
	Address                entity.ContactAddress `json:"address"`
	IsPrimary              bool                  `json:"is_primary"`
	NotificationsEnabled   bool                  `json:"notifications_enabled"`
	PreferredContactMethod string                `json:"preferred_contact_method"`
	CanViewMedicalInfo     bool                  `json:"can_view_medical_info"`
	CanMakeDecisions       bool                  `json:"can_make_decisions"`
	LastContacted          *time.Time            `json:"last_contacted,omitempty"`
	Notes                  string                `json:"notes,omitempty"`
	CreatedAt              time.Time             `json:"created_at"`
	UpdatedAt              time.Time             `json:"updated_at"`
}
