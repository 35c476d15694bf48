package dto

import (
	"time"

	"healthtech-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type ApplyDoctorRequest struct {
	MedicalLicenseNumber string                      `json:"medical_license_number" validate:"required,min=4,max=64"`
	Specialization       string                      `json:"specialization" validate:"required,oneof=cardiology dermatology endocrinology gastroenterology neurology pediatrics psychiatry radiology surgery general_practice orthopedics ophthalmology"`
	HospitalAffiliation  string                      `json:"hospital_affiliation" validate:"omitempty,max=255"`
	Department           string                      `json:"department" validate:"omitempty,max=255"`
	YearsOfExperience    int                         `json:"years_of_experience" validate:"gte=0,lte=70"`
	ConsultationFee      decimal.Decimal             `json:"consultation_fee"`
	Qualifications       []entity.Qualification      `json:"qualifications" validate:"omitempty,dive"`
	Bio                  string                      `json:"bio" validate:"omitempty,max=2000"`
	LanguagesSpoken      []string                    `json:"languages_spoken"`
	Availability         entity.AvailabilitySchedule `json:"availability"`
}

// UpdateDoctorProfileRequest carries the fields a doctor may edit. License
// number and specialization are accepted only when unchanged.
type UpdateDoctorProfileRequest struct {
	MedicalLicenseNumber *string                      `json:"medical_license_number"`
	Specialization       *string                      `json:"specialization"`
	HospitalAffiliation  *string                      `json:"hospital_affiliation" validate:"omitempty,max=255"`
	Department           *string                      `json:"department" validate:"omitempty,max=255"`
	YearsOfExperience    *int                         `json:"years_of_experience" validate:"omitempty,gte=0,lte=70"`
	ConsultationFee      *decimal.Decimal             `json:"consultation_fee"`
	Availability         *entity.AvailabilitySchedule `json:"availability"`
	Qualifications       *[]entity.Qualification      `json:"qualifications" validate:"omitempty,dive"`
	Bio                  *string                      `json:"bio" validate:"omitempty,max=2000"`
	LanguagesSpoken      *[]string                    `json:"languages_spoken"`
}

type RejectDoctorRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=1000"`
}

type BulkDoctorActionRequest struct {
	DoctorIDs []uuid.UUID `json:"doctor_ids" validate:"required,min=1,max=100"`
	Action    string      `json:"action" validate:"required,oneof=approve reject"`
	Reason    string      `json:"reason" validate:"required_if=Action reject,max=1000"`
}

// Response DTOs

type DoctorResponse struct {
	ID                   uuid.UUID                   `json:"id"`
	UserID               uuid.UUID                   `json:"user_id"`
	DoctorCode           string                      `json:"doctor_code"`
	FullName             string                      `json:"full_name,omitempty"`
	Email                string                      `json:"email,omitempty"`
	MedicalLicenseNumber string                      `json:"medical_license_number"`
	Specialization       string                      `json:"specialization"`
	ApprovalStatus       string                      `json:"approval_status"`
	ApprovedBy           *uuid.UUID                  `json:"approved_by,omitempty"`
	ApprovalDate         *time.Time                  `json:"approval_date,omitempty"`
	RejectionReason      string                      `json:"rejection_reason,omitempty"`
	HospitalAffiliation  string                      `json:"hospital_affiliation,omitempty"`
	Department           string                      `json:"department,omitempty"`
	YearsOfExperience    int                         `json:"years_of_experience"`
	ConsultationFee      decimal.Decimal             `json:"consultation_fee"`
	AverageRating        decimal.Decimal             `json:"average_rating"`
	TotalReviews         int                         `json:"total_reviews"`
	Availability         entity.AvailabilitySchedule `json:"availability"`
	AvailableDays        []string                    `json:"available_days"`
	Qualifications       []entity.Qualification      `json:"qualifications"`
	Bio                  string                      `json:"bio,omitempty"`
	LanguagesSpoken      []string                    `json:"languages_spoken"`
	CreatedAt            time.Time                   `json:"created_at"`
}

// DoctorSummary is the doctor shown to a patient in relation listings.
type DoctorSummary struct {
	ID                  uuid.UUID `json:"id"`
	DoctorCode          string    `json:"doctor_code"`
	FullName            string    `json:"full_name"`
	Specialization      string    `json:"specialization"`
	HospitalAffiliation string    `json:"hospital_affiliation,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int64            `json:"total"`
}

type BulkActionResult struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Success  bool      `json:"success"`
	Error    string    `json:"error,omitempty"`
}

type BulkActionResponse struct {
	Modified int                `json:"modified"`
	Results  []BulkActionResult `json:"results"`
}
