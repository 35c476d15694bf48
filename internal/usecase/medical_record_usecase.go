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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MedicalRecordUsecase interface {
	Create(ctx context.Context, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	List(ctx context.Context, query *dto.MedicalRecordQuery) (*dto.MedicalRecordListResponse, error)
	Finalize(ctx context.Context, recordID uuid.UUID) (*dto.MedicalRecordResponse, error)
}

type medicalRecordUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	tx         repository.Transactor
	recordRepo repository.MedicalRecordRepository
	authorizer *service.Authorizer
	audit      service.AuditService
	now        func() time.Time
}

func NewMedicalRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	tx repository.Transactor,
	recordRepo repository.MedicalRecordRepository,
	authorizer *service.Authorizer,
	audit service.AuditService,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		db:         db,
		log:        log,
		tx:         tx,
		recordRepo: recordRepo,
		authorizer: authorizer,
		audit:      audit,
		now:        time.Now,
	}
}

// Create writes a draft visit record. Prescriptions need their own flag on
// top of addMedicalNotes. A patient writing to their own record passes
// Authorize without a relation.
func (u *medicalRecordUsecase) Create(ctx context.Context, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}

	relation, err := u.authorizer.Authorize(ctx, actor, req.PatientID, service.ActionWriteMedicalRecords)
	if err != nil {
		return nil, err
	}
	if len(req.Prescriptions) > 0 {
		if _, err := u.authorizer.Authorize(ctx, actor, req.PatientID, service.ActionWritePrescriptions); err != nil {
			return nil, err
		}
	}

	now := u.now()
	visitDate := now
	if req.VisitDate != nil {
		visitDate = *req.VisitDate
	}
	prescriptions := make([]entity.Prescription, len(req.Prescriptions))
	for i, p := range req.Prescriptions {
		if p.PrescribedDate.IsZero() {
			p.PrescribedDate = now
		}
		prescriptions[i] = p
	}

	record := &entity.MedicalRecord{
		PatientID:            req.PatientID,
		DoctorID:             authoringDoctor(actor, req.PatientID),
		RelationID:           relationRef(relation),
		VisitDate:            visitDate,
		VisitType:            entity.VisitType(req.VisitType),
		Symptoms:             datatypes.NewJSONSlice(req.Symptoms),
		Diagnosis:            datatypes.NewJSONType(req.Diagnosis),
		Prescriptions:        datatypes.NewJSONSlice(prescriptions),
		TreatmentPlan:        datatypes.NewJSONType(req.TreatmentPlan),
		FollowUpDate:         req.FollowUpDate,
		FollowUpInstructions: req.FollowUpInstructions,
		RecordStatus:         entity.RecordStatusDraft,
		Notes:                req.Notes,
		Recommendations:      req.Recommendations,
		CreatedBy:            actor.UserID,
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.recordRepo.Create(ctx, tx, record); err != nil {
			u.log.Warnf("Failed to create medical record for patient %s: %+v", req.PatientID, err)
			return apperror.Internal(err)
		}
		return u.audit.Record(ctx, tx, service.AuditEntry{
			UserID:    &actor.UserID,
			PatientID: &record.PatientID,
			Action:    entity.AuditActionRecordCreate,
			Entity:    "medical_record",
			EntityID:  record.ID.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	return converter.MedicalRecordToResponse(record), nil
}

func (u *medicalRecordUsecase) List(ctx context.Context, query *dto.MedicalRecordQuery) (*dto.MedicalRecordListResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	patientID, err := targetPatient(actor, query.PatientID)
	if err != nil {
		return nil, err
	}
	if _, err := u.authorizer.Authorize(ctx, actor, patientID, service.ActionReadMedicalRecords); err != nil {
		return nil, err
	}

	page := query.PageRequest.Normalize()
	records, total, err := u.recordRepo.List(ctx, u.db, entity.MedicalRecordFilter{
		PatientID: patientID,
		Status:    entity.RecordStatus(query.Status),
		Limit:     page.Limit,
		Offset:    page.Offset(),
	})
	if err != nil {
		u.log.Warnf("Failed to list medical records of patient %s: %+v", patientID, err)
		return nil, apperror.Internal(err)
	}

	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordsToResponses(records),
		Total:   total,
	}, nil
}

// Finalize locks a draft. Only its author may do it.
func (u *medicalRecordUsecase) Finalize(ctx context.Context, recordID uuid.UUID) (*dto.MedicalRecordResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}

	record, err := u.recordRepo.FindByID(ctx, u.db, recordID)
	if err != nil {
		u.log.Warnf("Failed to find medical record %s: %+v", recordID, err)
		return nil, apperror.Internal(err)
	}
	if record == nil {
		return nil, ErrMedicalRecordNotFound
	}
	if !record.IsAuthoredBy(actor.UserID) {
		return nil, ErrNotRecordAuthor
	}
	if !record.Finalize(actor.UserID) {
		return nil, ErrMedicalRecordNotDraft
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.recordRepo.UpdateStatus(ctx, tx, record); err != nil {
			u.log.Warnf("Failed to finalize medical record %s: %+v", record.ID, err)
			return apperror.Internal(err)
		}
		return u.audit.Record(ctx, tx, service.AuditEntry{
			UserID:    &actor.UserID,
			PatientID: &record.PatientID,
			Action:    entity.AuditActionRecordFinalize,
			Entity:    "medical_record",
			EntityID:  record.ID.String(),
			OldValue:  entity.RecordStatusDraft,
			NewValue:  record.RecordStatus,
		})
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Medical record %s finalized by %s", record.ID, actor.UserID)
	return converter.MedicalRecordToResponse(record), nil
}

// authoringDoctor is nil when the patient writes their own record.
func authoringDoctor(actor *entity.Actor, patientID uuid.UUID) *uuid.UUID {
	if actor.IsPatientSelf(patientID) || !actor.IsDoctor() {
		return nil
	}
	id := *actor.DoctorID
	return &id
}
