package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RelationStatus string

const (
	RelationStatusPending    RelationStatus = "pending"
	RelationStatusActive     RelationStatus = "active"
	RelationStatusInactive   RelationStatus = "inactive"
	RelationStatusTerminated RelationStatus = "terminated"
)

type RelationType string

const (
	RelationTypePrimary    RelationType = "primary"
	RelationTypeSpecialist RelationType = "specialist"
	RelationTypeConsultant RelationType = "consultant"
	RelationTypeTemporary  RelationType = "temporary"
)

func (t RelationType) IsValid() bool {
	switch t {
	case RelationTypePrimary, RelationTypeSpecialist, RelationTypeConsultant, RelationTypeTemporary:
		return true
	}
	return false
}

type AccessLevel string

const (
	AccessLevelFull          AccessLevel = "full"
	AccessLevelLimited       AccessLevel = "limited"
	AccessLevelEmergencyOnly AccessLevel = "emergency_only"
)

func (l AccessLevel) IsValid() bool {
	switch l {
	case AccessLevelFull, AccessLevelLimited, AccessLevelEmergencyOnly:
		return true
	}
	return false
}

// Permission names one flag of a relation's permission set.
type Permission string

const (
	PermissionViewMedicalRecords   Permission = "viewMedicalRecords"
	PermissionWritePrescriptions   Permission = "writePrescriptions"
	PermissionViewHealthMetrics    Permission = "viewHealthMetrics"
	PermissionAddMedicalNotes      Permission = "addMedicalNotes"
	PermissionScheduleAppointments Permission = "scheduleAppointments"
)

// AllPermissions is the closed permission set.
var AllPermissions = []Permission{
	PermissionViewMedicalRecords,
	PermissionWritePrescriptions,
	PermissionViewHealthMetrics,
	PermissionAddMedicalNotes,
	PermissionScheduleAppointments,
}

// ParsePermission accepts the camelCase name or its snake_case form.
func ParsePermission(name string) (Permission, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", ""))
	for _, p := range AllPermissions {
		if strings.ToLower(string(p)) == normalized {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown permission %q", name)
}

// Permissions is the fixed record of flags stored with perm_ column prefix.
type Permissions struct {
	ViewMedicalRecords   bool `gorm:"not null;default:false" json:"viewMedicalRecords"`
	WritePrescriptions   bool `gorm:"not null;default:false" json:"writePrescriptions"`
	ViewHealthMetrics    bool `gorm:"not null;default:false" json:"viewHealthMetrics"`
	AddMedicalNotes      bool `gorm:"not null;default:false" json:"addMedicalNotes"`
	ScheduleAppointments bool `gorm:"not null;default:false" json:"scheduleAppointments"`
}

// DefaultPermissions is what a new relation request carries unless overridden.
func DefaultPermissions() Permissions {
	return Permissions{ViewMedicalRecords: true, ViewHealthMetrics: true}
}

func (p Permissions) Has(perm Permission) bool {
	switch perm {
	case PermissionViewMedicalRecords:
		return p.ViewMedicalRecords
	case PermissionWritePrescriptions:
		return p.WritePrescriptions
	case PermissionViewHealthMetrics:
		return p.ViewHealthMetrics
	case PermissionAddMedicalNotes:
		return p.AddMedicalNotes
	case PermissionScheduleAppointments:
		return p.ScheduleAppointments
	}
	return false
}

func (p *Permissions) Set(perm Permission, value bool) {
	switch perm {
	case PermissionViewMedicalRecords:
		p.ViewMedicalRecords = value
	case PermissionWritePrescriptions:
		p.WritePrescriptions = value
	case PermissionViewHealthMetrics:
		p.ViewHealthMetrics = value
	case PermissionAddMedicalNotes:
		p.AddMedicalNotes = value
	case PermissionScheduleAppointments:
		p.ScheduleAppointments = value
	}
}

// relationTransitions lists the legal next states. Nothing leaves terminated.
var relationTransitions = map[RelationStatus][]RelationStatus{
	RelationStatusPending:  {RelationStatusActive, RelationStatusInactive, RelationStatusTerminated},
	RelationStatusActive:   {RelationStatusTerminated},
	RelationStatusInactive: {RelationStatusTerminated},
}

func (s RelationStatus) CanTransitionTo(next RelationStatus) bool {
	for _, allowed := range relationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// DoctorPatientRelation is the authorization edge between a doctor and a
// patient. At most one active row exists per pair; a partial unique index
// enforces it.
type DoctorPatientRelation struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"patient_id"`
	RelationType      RelationType   `gorm:"type:varchar(16);not null;default:'primary'" json:"relation_type"`
	Status            RelationStatus `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	Permissions       Permissions    `gorm:"embedded;embeddedPrefix:perm_" json:"permissions"`
	AccessLevel       AccessLevel    `gorm:"type:varchar(16);not null;default:'limited'" json:"access_level"`
	StartDate         *time.Time     `json:"start_date,omitempty"`
	EndDate           *time.Time     `json:"end_date,omitempty"`
	ReasonForRelation string         `gorm:"type:text" json:"reason_for_relation,omitempty"`
	SpecialtyFocus    string         `gorm:"type:varchar(255)" json:"specialty_focus,omitempty"`
	Notes             string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy         uuid.UUID      `gorm:"type:uuid;not null" json:"created_by"`
	LastUpdatedBy     *uuid.UUID     `gorm:"type:uuid" json:"last_updated_by,omitempty"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (DoctorPatientRelation) TableName() string {
	return "doctor_patient_relations"
}

func (r *DoctorPatientRelation) IsActive() bool {
	return r.Status == RelationStatusActive
}

func (r *DoctorPatientRelation) IsPending() bool {
	return r.Status == RelationStatusPending
}

// IsParty reports whether the actor is the relation's doctor or patient.
func (r *DoctorPatientRelation) IsParty(actor *Actor) bool {
	return actor.IsDoctorSelf(r.DoctorID) || actor.IsPatientSelf(r.PatientID)
}

// Activate moves a pending relation to active. The start date moves from the
// request time to the approval time.
func (r *DoctorPatientRelation) Activate(at time.Time) bool {
	if !r.Status.CanTransitionTo(RelationStatusActive) {
		return false
	}
	r.Status = RelationStatusActive
	r.StartDate = &at
	return true
}

// Terminate moves any non-terminated relation to terminated. The end date
// never precedes the start date.
func (r *DoctorPatientRelation) Terminate(at time.Time) bool {
	if !r.Status.CanTransitionTo(RelationStatusTerminated) {
		return false
	}
	end := at
	if r.StartDate != nil && end.Before(*r.StartDate) {
		end = *r.StartDate
	}
	r.Status = RelationStatusTerminated
	r.EndDate = &end
	return true
}

// Decline closes a pending request without activating it.
func (r *DoctorPatientRelation) Decline() bool {
	if !r.Status.CanTransitionTo(RelationStatusInactive) {
		return false
	}
	r.Status = RelationStatusInactive
	return true
}
