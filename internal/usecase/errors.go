package usecase

import "healthtech-api/pkg/apperror"

var (
	ErrEmailAlreadyExists = apperror.Conflict("email already exists")
	ErrInvalidCredentials = apperror.Unauthorized("invalid email or password")
	ErrInvalidToken       = apperror.Unauthorized("invalid or expired token")
	ErrTokenRevoked       = apperror.Unauthorized("token has been revoked")
	ErrAccountSuspended   = apperror.Forbidden("account is suspended")
	ErrUserNotFound       = apperror.NotFound("user not found")
	ErrRoleNotFound       = apperror.NotFound("role not found")
	ErrInvalidDateFormat  = apperror.Validation("invalid date format, use YYYY-MM-DD", map[string]string{"date_of_birth": "date_of_birth must match format 2006-01-02"})
	ErrInvalidUserStatus  = apperror.Validation("invalid account status", nil)

	ErrPatientNotFound         = apperror.NotFound("patient not found")
	ErrClinicalProfileRequired = apperror.Forbidden("a doctor or patient profile is required")
	ErrPatientProfileRequired  = apperror.Forbidden("a patient profile is required")
	ErrPrimaryDoctorInvalid    = apperror.Validation("primary doctor must be an approved doctor", map[string]string{"primary_doctor_id": "primary_doctor_id must reference an approved doctor"})

	ErrEmergencyContactNotFound = apperror.NotFound("emergency contact not found")
	ErrPrimaryContactChanged    = apperror.Conflict("another primary emergency contact was set concurrently, reload and retry")

	ErrDoctorNotFound          = apperror.NotFound("doctor application not found")
	ErrDoctorProfileRequired   = apperror.Forbidden("an approved doctor profile is required")
	ErrAlreadyApplied          = apperror.Conflict("a doctor application already exists for this account")
	ErrLicenseAlreadyExists    = apperror.Conflict("medical license number already registered")
	ErrApplicationNotPending   = apperror.InvalidState("doctor application is not pending")
	ErrNegativeConsultationFee = apperror.Validation("consultation fee must not be negative", map[string]string{"consultation_fee": "consultation_fee must be greater than or equal to 0"})
	ErrLicenseChangeForbidden  = apperror.Validation("medical license number cannot be changed directly, contact an admin", map[string]string{"medical_license_number": "medical_license_number cannot be changed"})
	ErrSpecializationChange    = apperror.Validation("specialization change requires admin approval", map[string]string{"specialization": "specialization cannot be changed"})
	ErrInvalidAvailability     = apperror.Validation("invalid availability schedule", map[string]string{"availability": "availability keys must be weekdays and slots must use HH:MM with end after start"})

	ErrRelationNotFound      = apperror.NotFound("relation not found")
	ErrRelationExists        = apperror.Conflict("an active relation already exists for this doctor and patient")
	ErrRelationPendingExists = apperror.Conflict("a pending relation request already exists for this doctor and patient")
	ErrRelationNotPending    = apperror.InvalidState("relation is not pending")
	ErrRelationChanged       = apperror.InvalidState("relation was modified concurrently, reload and retry")
	ErrRelationTerminated    = apperror.InvalidState("relation is already terminated")
	ErrNotRelationParty      = apperror.Forbidden("you are not a party to this relation")
	ErrNotRelationPatient    = apperror.Forbidden("only the patient of this relation may do this")
	ErrUnknownPermission     = apperror.Validation("unknown permission", map[string]string{"permission": "permission must be one of: viewMedicalRecords writePrescriptions viewHealthMetrics addMedicalNotes scheduleAppointments"})
	ErrSelfRelation          = apperror.Validation("a doctor cannot request a relation with their own patient profile", nil)
	ErrPatientIDRequired     = apperror.Validation("patient_id is required", map[string]string{"patient_id": "patient_id is required"})

	ErrInvalidMetricValue    = apperror.Validation("invalid metric value", map[string]string{"value": "value must be a number, or an object with systolic and diastolic for blood_pressure"})
	ErrMedicalRecordNotFound = apperror.NotFound("medical record not found")
	ErrMedicalRecordNotDraft = apperror.InvalidState("medical record is not a draft")
	ErrNotRecordAuthor       = apperror.Forbidden("only the author may finalize this record")
	ErrHealthGoalNotFound    = apperror.NotFound("health goal not found")
	ErrInvalidTimeRange      = apperror.Validation("end time must not be before start time", map[string]string{"end_time": "end_time must not be before start_time"})
	ErrInvalidGoalDates      = apperror.Validation("target date must not be before start date", map[string]string{"target_date": "target_date must not be before start_date"})
	ErrNotificationNotFound  = apperror.NotFound("notification not found")

	ErrSlotNotFound        = apperror.NotFound("appointment slot not found")
	ErrSlotPast            = apperror.Validation("cannot book a past slot", nil)
	ErrSlotFull            = apperror.Conflict("appointment slot is full")
	ErrInvalidSlotTime     = apperror.Validation("end time must be after start time", map[string]string{"end_time": "end_time must be after start_time"})
	ErrAlreadyBooked       = apperror.Conflict("patient already has an appointment in this slot")
	ErrAppointmentNotFound = apperror.NotFound("appointment not found")
	ErrAppointmentNotOwned = apperror.Forbidden("appointment does not belong to you")
	ErrAppointmentNotOpen  = apperror.InvalidState("appointment is already cancelled or completed")
	ErrSlotNotOwned        = apperror.Forbidden("doctors may only book patients into their own slots")
)
