package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type VisitType string

const (
	VisitTypeConsultation   VisitType = "consultation"
	VisitTypeFollowUp       VisitType = "follow_up"
	VisitTypeEmergency      VisitType = "emergency"
	VisitTypeRoutineCheckup VisitType = "routine_checkup"
	VisitTypeVaccination    VisitType = "vaccination"
	VisitTypeLabTest        VisitType = "lab_test"
)

func (v VisitType) IsValid() bool {
	switch v {
	case VisitTypeConsultation, VisitTypeFollowUp, VisitTypeEmergency,
		VisitTypeRoutineCheckup, VisitTypeVaccination, VisitTypeLabTest:
		return true
	}
	return false
}

type RecordStatus string

const (
	RecordStatusDraft     RecordStatus = "draft"
	RecordStatusFinalized RecordStatus = "finalized"
	RecordStatusReviewed  RecordStatus = "reviewed"
	RecordStatusArchived  RecordStatus = "archived"
)

type Symptom struct {
	Description string     `json:"description"`
	Severity    int        `json:"severity,omitempty"`
	Duration    string     `json:"duration,omitempty"`
	Onset       *time.Time `json:"onset,omitempty"`
}

type Diagnosis struct {
	Primary   string   `json:"primary"`
	Secondary []string `json:"secondary,omitempty"`
	ICD10Code string   `json:"icd10_code,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

type Prescription struct {
	Medication     string    `json:"medication"`
	Dosage         string    `json:"dosage"`
	Frequency      string    `json:"frequency"`
	Duration       string    `json:"duration,omitempty"`
	Quantity       int       `json:"quantity,omitempty"`
	Instructions   string    `json:"instructions,omitempty"`
	Refills        int       `json:"refills"`
	PrescribedDate time.Time `json:"prescribed_date"`
}

type TreatmentPlan struct {
	Description      string   `json:"description,omitempty"`
	Medications      []string `json:"medications,omitempty"`
	Procedures       []string `json:"procedures,omitempty"`
	LifestyleChanges string   `json:"lifestyle_changes,omitempty"`
	Duration         string   `json:"duration,omitempty"`
}

// MedicalRecord is a visit note. Doctors write under an active relation;
// patients may log their own, in which case DoctorID is nil.
type MedicalRecord struct {
	ID                   uuid.UUID                         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID            uuid.UUID                         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID             *uuid.UUID                        `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	RelationID           *uuid.UUID                        `gorm:"type:uuid" json:"relation_id,omitempty"`
	VisitDate            time.Time                         `gorm:"not null" json:"visit_date"`
	VisitType            VisitType                         `gorm:"type:varchar(32);not null" json:"visit_type"`
	Symptoms             datatypes.JSONSlice[Symptom]      `gorm:"type:jsonb" json:"symptoms"`
	Diagnosis            datatypes.JSONType[Diagnosis]     `gorm:"type:jsonb" json:"diagnosis"`
	Prescriptions        datatypes.JSONSlice[Prescription] `gorm:"type:jsonb" json:"prescriptions"`
	TreatmentPlan        datatypes.JSONType[TreatmentPlan] `gorm:"type:jsonb" json:"treatment_plan"`
	FollowUpDate         *time.Time                        `json:"follow_up_date,omitempty"`
	FollowUpInstructions string                            `gorm:"type:text" json:"follow_up_instructions,omitempty"`
	RecordStatus         RecordStatus                      `gorm:"type:varchar(16);not null;default:'draft'" json:"record_status"`
	Notes                string                            `gorm:"type:text" json:"notes,omitempty"`
	Recommendations      string                            `gorm:"type:text" json:"recommendations,omitempty"`
	CreatedBy            uuid.UUID                         `gorm:"type:uuid;not null" json:"created_by"`
	LastUpdatedBy        *uuid.UUID                        `gorm:"type:uuid" json:"last_updated_by,omitempty"`
	CreatedAt            time.Time                         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time                         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}

func (m *MedicalRecord) IsAuthoredBy(userID uuid.UUID) bool {
	return m.CreatedBy == userID
}

func (m *MedicalRecord) HasPrescriptions() bool {
	return len(m.Prescriptions) > 0
}

// Finalize locks a draft record.
func (m *MedicalRecord) Finalize(by uuid.UUID) bool {
	if m.RecordStatus != RecordStatusDraft {
		return false
	}
	m.RecordStatus = RecordStatusFinalized
	m.LastUpdatedBy = &by
	return true
}

type MedicalRecordFilter struct {
	PatientID uuid.UUID
	DoctorID  *uuid.UUID
	Status    RecordStatus
	Limit     int
	Offset    int
}
