package dto

import (
	"time"

	"github.com/google/uuid"
)

type ActivityLogQuery struct {
	UserID    *uuid.UUID
	PatientID *uuid.UUID
	Action    string
	PageRequest
}

// Response DTOs

type ActivityLogResponse struct {
	ID        int64                  `json:"id"`
	UserID    *uuid.UUID             `json:"user_id,omitempty"`
	PatientID *uuid.UUID             `json:"patient_id,omitempty"`
	Action    string                 `json:"action"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
}

type ActivityLogListResponse struct {
	Logs  []ActivityLogResponse `json:"logs"`
	Total int64                 `json:"total"`
}
