package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ContactRelationship string

const (
	ContactSpouse    ContactRelationship = "spouse"
	ContactParent    ContactRelationship = "parent"
	ContactChild     ContactRelationship = "child"
	ContactSibling   ContactRelationship = "sibling"
	ContactFriend    ContactRelationship = "friend"
	ContactRelative  ContactRelationship = "relative"
	ContactCaregiver ContactRelationship = "caregiver"
	ContactOther     ContactRelationship = "other"
)

type ContactMethod string

const (
	ContactMethodPhone    ContactMethod = "phone"
	ContactMethodSMS      ContactMethod = "sms"
	ContactMethodEmail    ContactMethod = "email"
	ContactMethodWhatsApp ContactMethod = "whatsapp"
)

type ContactAddress struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// EmergencyContact belongs to one patient. At most one contact per patient
// is primary; a partial unique index enforces it.
type EmergencyContact struct {
	ID                     uuid.UUID                          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID              uuid.UUID                          `gorm:"type:uuid;not null;index" json:"patient_id"`
	FullName               string                             `gorm:"type:varchar(255);not null" json:"full_name"`
	Relationship           ContactRelationship                `gorm:"type:varchar(16);not null" json:"relationship"`
	Phone                  string                             `gorm:"type:varchar(32);not null;index" json:"phone"`
	Email                  string                             `gorm:"type:varchar(255)" json:"email,omitempty"`
	Address                datatypes.JSONType[ContactAddress] `gorm:"type:jsonb" json:"address"`
	IsPrimary              bool                               `gorm:"not null;default:false" json:"is_primary"`
	NotificationsEnabled   bool                               `gorm:"not null;default:true" json:"notifications_enabled"`
	PreferredContactMethod ContactMethod                      `gorm:"type:varchar(16);not null;default:'phone'" json:"preferred_contact_method"`
	CanViewMedicalInfo     bool                               `gorm:"not null;default:false" json:"can_view_medical_info"`
	CanMakeDecisions       bool                               `gorm:"not null;default:false" json:"can_make_decisions"`
	LastContacted          *time.Time                         `json:"last_contacted,omitempty"`
	Notes                  string                             `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt              time.Time                          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time                          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (EmergencyContact) TableName() string {
	return "emergency_contacts"
}
