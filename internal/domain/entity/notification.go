package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types
const (
	NotificationDoctorRequest    = "doctor_request"
	NotificationRelationApproved = "relation_approved"
	NotificationRelationEnded    = "relation_terminated"
	NotificationRelationDeclined = "relation_declined"
	NotificationDoctorApproved   = "doctor_approved"
	NotificationDoctorRejected   = "doctor_rejected"
	NotificationAbnormalMetric   = "abnormal_metric"
)

// Notification is an inbox document stored in the notifications collection.
type Notification struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	UserID    string                 `bson:"user_id" json:"user_id"`
	Type      string                 `bson:"type" json:"type"`
	Title     string                 `bson:"title" json:"title"`
	Message   string                 `bson:"message" json:"message"`
	Data      map[string]interface{} `bson:"data,omitempty" json:"data,omitempty"`
	Read      bool                   `bson:"read" json:"read"`
	CreatedAt time.Time              `bson:"created_at" json:"created_at"`
}
