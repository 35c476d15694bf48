package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrDuplicateKey is matched by every DuplicateKeyError.
var ErrDuplicateKey = errors.New("duplicate key")

// DuplicateKeyError reports a unique constraint violation by constraint name.
type DuplicateKeyError struct {
	Constraint string
}

func (e *DuplicateKeyError) Error() string {
	return "duplicate key violates " + e.Constraint
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// IsDuplicateOn reports whether err is a unique violation of constraint.
func IsDuplicateOn(err error, constraint string) bool {
	var dup *DuplicateKeyError
	return errors.As(err, &dup) && dup.Constraint == constraint
}

// Unique constraint names declared by the migrations.
const (
	ConstraintUsersEmail              = "uq_users_email"
	ConstraintDoctorsUserID           = "uq_doctors_user_id"
	ConstraintDoctorsLicense          = "uq_doctors_license"
	ConstraintPatientsUserID          = "uq_patients_user_id"
	ConstraintPatientsCode            = "uq_patients_code"
	ConstraintRelationsActivePair     = "uq_relations_active_pair"
	ConstraintRelationsPending        = "uq_relations_pending_pair"
	ConstraintAppointmentsOpen        = "uq_appointments_open_patient_slot"
	ConstraintEmergencyContactPrimary = "uq_emergency_contacts_primary"
)

// Transactor runs fn inside a database transaction, committing when fn
// returns nil and rolling back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}
