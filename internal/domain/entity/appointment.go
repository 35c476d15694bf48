package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentSlot is a dated consultation window published by a doctor with a
// fixed patient quota. Remaining quota is tracked in Redis, not stored here.
type AppointmentSlot struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	SlotDate   time.Time `gorm:"type:date;not null;index" json:"slot_date"`
	StartTime  string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime    string    `gorm:"type:varchar(5);not null" json:"end_time"`
	TotalQuota int       `gorm:"not null" json:"total_quota"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor *Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (AppointmentSlot) TableName() string {
	return "appointment_slots"
}

// SlotFilter narrows slot listings.
type SlotFilter struct {
	DoctorID *uuid.UUID
	From     *time.Time
	To       *time.Time
}

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment books one place in a slot for a patient.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	SlotID          int               `gorm:"not null;index" json:"slot_id"`
	RelationID      *uuid.UUID        `gorm:"type:uuid" json:"relation_id,omitempty"`
	AppointmentCode string            `gorm:"type:varchar(50);uniqueIndex;not null" json:"appointment_code"`
	QueueNumber     int               `gorm:"not null" json:"queue_number"`
	Reason          string            `gorm:"type:text" json:"reason,omitempty"`
	Status          AppointmentStatus `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	BookedBy        uuid.UUID         `gorm:"type:uuid;not null" json:"booked_by"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Slot *AppointmentSlot `gorm:"foreignKey:SlotID" json:"slot,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// Cancel reports false for appointments already cancelled or completed.
func (a *Appointment) Cancel() bool {
	if a.Status == AppointmentStatusCancelled || a.Status == AppointmentStatusCompleted {
		return false
	}
	a.Status = AppointmentStatusCancelled
	return true
}
