package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog represents an activity trail entry
type AuditLog struct {
	ID        int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID        `gorm:"type:uuid;index" json:"user_id,omitempty"`
	PatientID *uuid.UUID        `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	Action    string            `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Common audit actions
const (
	AuditActionUserLogin          = "user.login"
	AuditActionUserLogout         = "user.logout"
	AuditActionUserRegister       = "user.register"
	AuditActionUserStatusUpdate   = "user.status_update"
	AuditActionProfileUpdate      = "profile.update"
	AuditActionPatientDelete      = "patient.delete"
	AuditActionPatientUpdate      = "patient.update"
	AuditActionDoctorApply        = "doctor.apply"
	AuditActionDoctorApprove      = "doctor.approve"
	AuditActionDoctorReject       = "doctor.reject"
	AuditActionDoctorProfile      = "doctor.profile_update"
	AuditActionRelationRequest    = "relation.request"
	AuditActionRelationApprove    = "relation.approve"
	AuditActionRelationTerminate  = "relation.terminate"
	AuditActionRelationDecline    = "relation.decline"
	AuditActionPermissionGrant    = "relation.permission_grant"
	AuditActionPermissionRevoke   = "relation.permission_revoke"
	AuditActionMetricRecord       = "health_metric.record"
	AuditActionRecordCreate       = "medical_record.create"
	AuditActionRecordFinalize     = "medical_record.finalize"
	AuditActionContactCreate      = "emergency_contact.create"
	AuditActionContactDelete      = "emergency_contact.delete"
)

type AuditLogFilter struct {
	UserID    *uuid.UUID
	PatientID *uuid.UUID
	Action    string
	Limit     int
	Offset    int
}
