package usecase

import (
	"context"
	"time"

	"healthtech-api/internal/converter"
	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/delivery/http/middleware"
	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/domain/repository"
	"healthtech-api/internal/service"
	"healthtech-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type RelationUsecase interface {
	RequestRelation(ctx context.Context, req *dto.CreateRelationRequest) (*dto.RelationResponse, error)
	ApproveRelation(ctx context.Context, relationID uuid.UUID) (*dto.RelationResponse, error)
	TerminateRelation(ctx context.Context, relationID uuid.UUID) (*dto.RelationResponse, error)
	DeclineRelation(ctx context.Context, relationID uuid.UUID) (*dto.RelationResponse, error)
	GrantPermission(ctx context.Context, relationID uuid.UUID, permission string) (*dto.RelationResponse, error)
	RevokePermission(ctx context.Context, relationID uuid.UUID, permission string) (*dto.RelationResponse, error)
	ListPending(ctx context.Context) (*dto.RelationListResponse, error)
	ListDoctorPatients(ctx context.Context) (*dto.RelationListResponse, error)
	ListPatientDoctors(ctx context.Context) (*dto.RelationListResponse, error)
}

type relationUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	tx           repository.Transactor
	relationRepo repository.RelationRepository
	patientRepo  repository.PatientRepository
	doctorRepo   repository.DoctorRepository
	audit        service.AuditService
	notifier     service.NotificationService
	now          func() time.Time
}

func NewRelationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	tx repository.Transactor,
	relationRepo repository.RelationRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	audit service.AuditService,
	notifier service.NotificationService,
) RelationUsecase {
	return &relationUsecase{
		db:           db,
		log:          log,
		tx:           tx,
		relationRepo: relationRepo,
		patientRepo:  patientRepo,
		doctorRepo:   doctorRepo,
		audit:        audit,
		notifier:     notifier,
		now:          time.Now,
	}
}

// RequestRelation opens a pending relation from the calling doctor to a
// patient. The partial unique indexes decide races between concurrent
// requests; the FindActive check only gives the common case a clear message.
func (u *relationUsecase) RequestRelation(ctx context.Context, req *dto.CreateRelationRequest) (*dto.RelationResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsDoctor() {
		return nil, ErrDoctorProfileRequired
	}
	if actor.IsPatientSelf(req.PatientID) {
		return nil, ErrSelfRelation
	}

	patient, err := u.patientRepo.FindByID(ctx, u.db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, apperror.Internal(err)
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	existing, err := u.relationRepo.FindActive(ctx, u.db, *actor.DoctorID, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to check active relation: %+v", err)
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, ErrRelationExists
	}

	permissions := entity.DefaultPermissions()
	if req.Permissions != nil {
		permissions = *req.Permissions
	}
	accessLevel := entity.AccessLevelLimited
	if req.AccessLevel != "" {
		accessLevel = entity.AccessLevel(req.AccessLevel)
	}

	// StartDate marks the request; approval re-stamps it.
	requestedAt := u.now()
	relation := &entity.DoctorPatientRelation{
		DoctorID:          *actor.DoctorID,
		PatientID:         req.PatientID,
		RelationType:      entity.RelationType(req.RelationType),
		Status:            entity.RelationStatusPending,
		Permissions:       permissions,
		AccessLevel:       accessLevel,
		StartDate:         &requestedAt,
		ReasonForRelation: req.ReasonForRelation,
		SpecialtyFocus:    req.SpecialtyFocus,
		Notes:             req.Notes,
		CreatedBy:         actor.UserID,
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.relationRepo.Create(ctx, tx, relation); err != nil {
			switch {
			case repository.IsDuplicateOn(err, repository.ConstraintRelationsActivePair):
				return ErrRelationExists
			case repository.IsDuplicateOn(err, repository.ConstraintRelationsPending):
				return ErrRelationPendingExists
			}
			u.log.Warnf("Failed to create relation: %+v", err)
			return apperror.Internal(err)
		}
		return u.record(ctx, tx, actor, relation, entity.AuditActionRelationRequest, nil)
	})
	if err != nil {
		return nil, err
	}

	u.notify(ctx, patient.UserID, entity.NotificationDoctorRequest, "New doctor request",
		actor.FullName+" has requested access to your health records", relation)

	u.log.Infof("Relation requested: id=%s doctor=%s patient=%s", relation.ID, relation.DoctorID, relation.PatientID)
	return converter.RelationToResponse(relation), nil
}

func (u *relationUsecase) ApproveRelation(ctx context.Context, relationID uuid.UUID) (*dto.RelationResponse, error) {
	actor, relation, err := u.load(ctx, relationID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && !actor.IsPatientSelf(relation.PatientID) {
		return nil, ErrNotRelationPatient
	}

	before := relation.Status
	if !relation.Activate(u.now()) {
		return nil, ErrRelationNotPending
	}
	relation.LastUpdatedBy = &actor.UserID

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		rows, err := u.relationRepo.UpdateStatus(ctx, tx, relation, before)
		if err != nil {
			if repository.IsDuplicateOn(err, repository.ConstraintRelationsActivePair) {
				return ErrRelationExists
			}
			u.log.Warnf("Failed to approve relation %s: %+v", relation.ID, err)
			return apperror.Internal(err)
		}
		if rows == 0 {
			return ErrRelationNotPending
		}
		return u.record(ctx, tx, actor, relation, entity.AuditActionRelationApprove, before)
	})
	if err != nil {
		return nil, err
	}

	if doctorUserID, ok := u.doctorUserID(ctx, relation); ok {
		u.notify(ctx, doctorUserID, entity.NotificationRelationApproved, "Relation approved",
			"Your request to access patient records has been approved", relation)
	}

	u.log.Infof("Relation approved: id=%s by=%s", relation.ID, actor.UserID)
	return converter.RelationToResponse(relation), nil
}

func (u *relationUsecase) TerminateRelation(ctx context.Context, relationID uuid.UUID) (*dto.RelationResponse, error) {
	actor, relation, err := u.load(ctx, relationID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && !relation.IsParty(actor) {
		return nil, ErrNotRelationParty
	}

	before := relation.Status
	if !relation.Terminate(u.now()) {
		return nil, ErrRelationTerminated
	}
	relation.LastUpdatedBy = &actor.UserID

	if err := u.transition(ctx, actor, relation, before, entity.AuditActionRelationTerminate); err != nil {
		return nil, err
	}

	u.notifyCounterparty(ctx, actor, relation, entity.NotificationRelationEnded, "Relation terminated",
		"A doctor-patient relation you are part of has been terminated")

	u.log.Infof("Relation terminated: id=%s by=%s", relation.ID, actor.UserID)
	return converter.RelationToResponse(relation), nil
}

// DeclineRelation closes a pending request. Either party may decline (the
// doctor withdraws, the patient rejects), and so may an admin.
func (u *relationUsecase) DeclineRelation(ctx context.Context, relationID uuid.UUID) (*dto.RelationResponse, error) {
	actor, relation, err := u.load(ctx, relationID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && !relation.IsParty(actor) {
		return nil, ErrNotRelationParty
	}

	before := relation.Status
	if !relation.Decline() {
		return nil, ErrRelationNotPending
	}
	relation.LastUpdatedBy = &actor.UserID

	if err := u.transition(ctx, actor, relation, before, entity.AuditActionRelationDecline); err != nil {
		return nil, err
	}

	u.notifyCounterparty(ctx, actor, relation, entity.NotificationRelationDeclined, "Relation declined",
		"A pending doctor-patient relation request has been declined")

	u.log.Infof("Relation declined: id=%s by=%s", relation.ID, actor.UserID)
	return converter.RelationToResponse(relation), nil
}

func (u *relationUsecase) GrantPermission(ctx context.Context, relationID uuid.UUID, permission string) (*dto.RelationResponse, error) {
	return u.setPermission(ctx, relationID, permission, true)
}

func (u *relationUsecase) RevokePermission(ctx context.Context, relationID uuid.UUID, permission string) (*dto.RelationResponse, error) {
	return u.setPermission(ctx, relationID, permission, false)
}

// setPermission persists the flag whatever the relation status is; only
// active relations are ever consulted for access.
func (u *relationUsecase) setPermission(ctx context.Context, relationID uuid.UUID, name string, value bool) (*dto.RelationResponse, error) {
	perm, err := entity.ParsePermission(name)
	if err != nil {
		return nil, ErrUnknownPermission
	}

	actor, relation, err := u.load(ctx, relationID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && !actor.IsPatientSelf(relation.PatientID) {
		return nil, ErrNotRelationPatient
	}

	old := relation.Permissions
	relation.Permissions.Set(perm, value)
	relation.LastUpdatedBy = &actor.UserID

	action := entity.AuditActionPermissionGrant
	if !value {
		action = entity.AuditActionPermissionRevoke
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.relationRepo.UpdatePermissions(ctx, tx, relation); err != nil {
			u.log.Warnf("Failed to update permissions of relation %s: %+v", relation.ID, err)
			return apperror.Internal(err)
		}
		return u.audit.Record(ctx, tx, service.AuditEntry{
			UserID:    &actor.UserID,
			PatientID: &relation.PatientID,
			Action:    action,
			Entity:    "doctor_patient_relation",
			EntityID:  relation.ID.String(),
			OldValue:  old,
			NewValue:  relation.Permissions,
		})
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Relation %s permission %s set to %t by %s", relation.ID, perm, value, actor.UserID)
	return converter.RelationToResponse(relation), nil
}

// ListPending returns pending relations on either side of the caller.
func (u *relationUsecase) ListPending(ctx context.Context) (*dto.RelationListResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsDoctor() && !actor.IsPatient() {
		return nil, ErrClinicalProfileRequired
	}

	seen := map[uuid.UUID]bool{}
	var relations []entity.DoctorPatientRelation
	filters := make([]repository.RelationFilter, 0, 2)
	if actor.IsDoctor() {
		filters = append(filters, repository.RelationFilter{DoctorID: actor.DoctorID, Status: entity.RelationStatusPending})
	}
	if actor.IsPatient() {
		filters = append(filters, repository.RelationFilter{PatientID: actor.PatientID, Status: entity.RelationStatusPending})
	}
	for _, filter := range filters {
		found, err := u.relationRepo.List(ctx, u.db, filter)
		if err != nil {
			u.log.Warnf("Failed to list pending relations: %+v", err)
			return nil, apperror.Internal(err)
		}
		for _, r := range found {
			if !seen[r.ID] {
				seen[r.ID] = true
				relations = append(relations, r)
			}
		}
	}

	return &dto.RelationListResponse{
		Relations: converter.RelationsToResponses(relations),
		Total:     len(relations),
	}, nil
}

func (u *relationUsecase) ListDoctorPatients(ctx context.Context) (*dto.RelationListResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsDoctor() {
		return nil, ErrDoctorProfileRequired
	}
	return u.listActive(ctx, repository.RelationFilter{DoctorID: actor.DoctorID, Status: entity.RelationStatusActive})
}

func (u *relationUsecase) ListPatientDoctors(ctx context.Context) (*dto.RelationListResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsPatient() {
		return nil, ErrPatientProfileRequired
	}
	return u.listActive(ctx, repository.RelationFilter{PatientID: actor.PatientID, Status: entity.RelationStatusActive})
}

func (u *relationUsecase) listActive(ctx context.Context, filter repository.RelationFilter) (*dto.RelationListResponse, error) {
	relations, err := u.relationRepo.List(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to list relations: %+v", err)
		return nil, apperror.Internal(err)
	}
	return &dto.RelationListResponse{
		Relations: converter.RelationsToResponses(relations),
		Total:     len(relations),
	}, nil
}

func (u *relationUsecase) load(ctx context.Context, relationID uuid.UUID) (*entity.Actor, *entity.DoctorPatientRelation, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, nil, err
	}

	relation, err := u.relationRepo.FindByID(ctx, u.db, relationID)
	if err != nil {
		u.log.Warnf("Failed to find relation %s: %+v", relationID, err)
		return nil, nil, apperror.Internal(err)
	}
	if relation == nil {
		return nil, nil, ErrRelationNotFound
	}
	return actor, relation, nil
}

// transition persists a status change guarded on the status it was read in.
func (u *relationUsecase) transition(ctx context.Context, actor *entity.Actor, relation *entity.DoctorPatientRelation, before entity.RelationStatus, action string) error {
	return u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		rows, err := u.relationRepo.UpdateStatus(ctx, tx, relation, before)
		if err != nil {
			u.log.Warnf("Failed to update relation %s: %+v", relation.ID, err)
			return apperror.Internal(err)
		}
		if rows == 0 {
			return ErrRelationChanged
		}
		return u.record(ctx, tx, actor, relation, action, before)
	})
}

func (u *relationUsecase) record(ctx context.Context, tx *gorm.DB, actor *entity.Actor, relation *entity.DoctorPatientRelation, action string, before interface{}) error {
	return u.audit.Record(ctx, tx, service.AuditEntry{
		UserID:    &actor.UserID,
		PatientID: &relation.PatientID,
		Action:    action,
		Entity:    "doctor_patient_relation",
		EntityID:  relation.ID.String(),
		OldValue:  before,
		NewValue:  relation.Status,
	})
}

func (u *relationUsecase) doctorUserID(ctx context.Context, relation *entity.DoctorPatientRelation) (uuid.UUID, bool) {
	if relation.Doctor != nil && relation.Doctor.UserID != uuid.Nil {
		return relation.Doctor.UserID, true
	}
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, relation.DoctorID)
	if err != nil || doctor == nil {
		u.log.Warnf("Failed to resolve doctor %s for notification: %+v", relation.DoctorID, err)
		return uuid.Nil, false
	}
	return doctor.UserID, true
}

func (u *relationUsecase) patientUserID(ctx context.Context, relation *entity.DoctorPatientRelation) (uuid.UUID, bool) {
	if relation.Patient != nil && relation.Patient.UserID != uuid.Nil {
		return relation.Patient.UserID, true
	}
	patient, err := u.patientRepo.FindByID(ctx, u.db, relation.PatientID)
	if err != nil || patient == nil {
		u.log.Warnf("Failed to resolve patient %s for notification: %+v", relation.PatientID, err)
		return uuid.Nil, false
	}
	return patient.UserID, true
}

// notifyCounterparty tells the other party; admins acting alone notify both.
func (u *relationUsecase) notifyCounterparty(ctx context.Context, actor *entity.Actor, relation *entity.DoctorPatientRelation, kind, title, message string) {
	var notices []service.Notice
	if !actor.IsDoctorSelf(relation.DoctorID) {
		if id, ok := u.doctorUserID(ctx, relation); ok {
			notices = append(notices, relationNotice(id, kind, title, message, relation))
		}
	}
	if !actor.IsPatientSelf(relation.PatientID) {
		if id, ok := u.patientUserID(ctx, relation); ok {
			notices = append(notices, relationNotice(id, kind, title, message, relation))
		}
	}
	if err := u.notifier.SendMany(ctx, notices); err != nil {
		u.log.Warnf("Failed to send %s notifications for relation %s: %+v", kind, relation.ID, err)
	}
}

// notify runs after the write has committed. Delivery failures are logged only.
func (u *relationUsecase) notify(ctx context.Context, userID uuid.UUID, kind, title, message string, relation *entity.DoctorPatientRelation) {
	if err := u.notifier.Send(ctx, relationNotice(userID, kind, title, message, relation)); err != nil {
		u.log.Warnf("Failed to send %s notification to %s: %+v", kind, userID, err)
	}
}

func relationNotice(userID uuid.UUID, kind, title, message string, relation *entity.DoctorPatientRelation) service.Notice {
	return service.Notice{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: message,
		Data: map[string]interface{}{
			"relation_id": relation.ID.String(),
			"doctor_id":   relation.DoctorID.String(),
			"patient_id":  relation.PatientID.String(),
			"status":      string(relation.Status),
		},
	}
}
