package service

import (
	"context"

	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/domain/repository"
	"healthtech-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Action is a class of clinical access gated by the relation ledger.
type Action string

const (
	ActionReadHealthMetrics    Action = "read_health_metrics"
	ActionWriteHealthMetrics   Action = "write_health_metrics"
	ActionReadMedicalRecords   Action = "read_medical_records"
	ActionWriteMedicalRecords  Action = "write_medical_records"
	ActionWritePrescriptions   Action = "write_prescriptions"
	ActionScheduleAppointments Action = "schedule_appointments"
)

// Metric writes by a doctor are gated by the same flag as reads.
var actionPermissions = map[Action]entity.Permission{
	ActionReadHealthMetrics:    entity.PermissionViewHealthMetrics,
	ActionWriteHealthMetrics:   entity.PermissionViewHealthMetrics,
	ActionReadMedicalRecords:   entity.PermissionViewMedicalRecords,
	ActionWriteMedicalRecords:  entity.PermissionAddMedicalNotes,
	ActionWritePrescriptions:   entity.PermissionWritePrescriptions,
	ActionScheduleAppointments: entity.PermissionScheduleAppointments,
}

// RequiredPermission returns the relation flag an action needs.
func RequiredPermission(action Action) (entity.Permission, bool) {
	p, ok := actionPermissions[action]
	return p, ok
}

var (
	ErrNoActiveRelation  = apperror.Forbidden("no active relation with this patient")
	ErrPermissionMissing = apperror.Forbidden("relation does not grant this permission")
	ErrNotClinician      = apperror.Forbidden("only the patient or an authorized doctor may access this data")
	ErrUnknownAction     = apperror.Forbidden("unknown clinical action")
)

// Evaluate decides whether actor may perform action on patientID's data given
// the active relation between them (nil when none exists). Patients always
// reach their own data; doctors need an active relation carrying the action's
// flag; everyone else, admins included, is refused.
func Evaluate(actor *entity.Actor, patientID uuid.UUID, action Action, relation *entity.DoctorPatientRelation) error {
	if actor == nil {
		return ErrNotClinician
	}
	if actor.IsPatientSelf(patientID) {
		return nil
	}
	if !actor.IsDoctor() {
		return ErrNotClinician
	}

	perm, ok := RequiredPermission(action)
	if !ok {
		return ErrUnknownAction
	}
	if relation == nil || !relation.IsActive() ||
		relation.PatientID != patientID || !actor.IsDoctorSelf(relation.DoctorID) {
		return ErrNoActiveRelation
	}
	if !relation.Permissions.Has(perm) {
		return ErrPermissionMissing
	}
	return nil
}

// Authorizer resolves the ledger entry for an actor and evaluates access.
type Authorizer struct {
	db           *gorm.DB
	log          *logrus.Logger
	relationRepo repository.RelationRepository
}

func NewAuthorizer(db *gorm.DB, log *logrus.Logger, relationRepo repository.RelationRepository) *Authorizer {
	return &Authorizer{db: db, log: log, relationRepo: relationRepo}
}

// Authorize returns the relation that granted access, or nil for self-access.
func (a *Authorizer) Authorize(ctx context.Context, actor *entity.Actor, patientID uuid.UUID, action Action) (*entity.DoctorPatientRelation, error) {
	if actor == nil {
		return nil, ErrNotClinician
	}
	if actor.IsPatientSelf(patientID) {
		return nil, nil
	}

	var relation *entity.DoctorPatientRelation
	if actor.IsDoctor() {
		found, err := a.relationRepo.FindActive(ctx, a.db, *actor.DoctorID, patientID)
		if err != nil {
			a.log.Warnf("Failed to look up relation doctor=%s patient=%s: %+v", *actor.DoctorID, patientID, err)
			return nil, apperror.Internal(err)
		}
		relation = found
	}

	if err := Evaluate(actor, patientID, action, relation); err != nil {
		a.log.WithFields(logrus.Fields{
			"user_id":    actor.UserID,
			"patient_id": patientID,
			"action":     action,
		}).Info("Clinical access denied")
		return nil, err
	}
	return relation, nil
}
