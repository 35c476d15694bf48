package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateSlotRequest struct {
	SlotDate   string `json:"slot_date" validate:"required,datetime=2006-01-02"`
	StartTime  string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime    string `json:"end_time" validate:"required,datetime=15:04"`
	TotalQuota int    `json:"total_quota" validate:"required,min=1,max=100"`
}

// BookAppointmentRequest carries PatientID only when a doctor books for a patient.
type BookAppointmentRequest struct {
	SlotID    int        `json:"slot_id" validate:"required,min=1"`
	PatientID *uuid.UUID `json:"patient_id"`
	Reason    string     `json:"reason" validate:"omitempty,max=1000"`
}

// Response DTOs

type SlotResponse struct {
	ID         int       `json:"id"`
	DoctorID   uuid.UUID `json:"doctor_id"`
	SlotDate   string    `json:"slot_date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	TotalQuota int       `json:"total_quota"`
	CreatedAt  time.Time `json:"created_at"`
}

type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

type AppointmentResponse struct {
	ID              uuid.UUID     `json:"id"`
	PatientID       uuid.UUID     `json:"patient_id"`
	DoctorID        uuid.UUID     `json:"doctor_id"`
	SlotID          int           `json:"slot_id"`
	RelationID      *uuid.UUID    `json:"relation_id,omitempty"`
	AppointmentCode string        `json:"appointment_code"`
	QueueNumber     int           `json:"queue_number"`
	Reason          string        `json:"reason,omitempty"`
	Status          string        `json:"status"`
	BookedBy        uuid.UUID     `json:"booked_by"`
	Slot            *SlotResponse `json:"slot,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
