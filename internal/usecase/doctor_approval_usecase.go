package usecase

import (
	"context"
	"strings"
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

type DoctorApprovalUsecase interface {
	Apply(ctx context.Context, req *dto.ApplyDoctorRequest) (*dto.DoctorResponse, error)
	ListApplications(ctx context.Context, status string, page dto.PageRequest) (*dto.DoctorListResponse, error)
	GetApplication(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	Approve(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	Reject(ctx context.Context, doctorID uuid.UUID, reason string) (*dto.DoctorResponse, error)
	BulkAction(ctx context.Context, req *dto.BulkDoctorActionRequest) (*dto.BulkActionResponse, error)
}

type doctorApprovalUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	tx         repository.Transactor
	doctorRepo repository.DoctorRepository
	userRepo   repository.UserRepository
	audit      service.AuditService
	notifier   service.NotificationService
	now        func() time.Time
}

func NewDoctorApprovalUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	tx repository.Transactor,
	doctorRepo repository.DoctorRepository,
	userRepo repository.UserRepository,
	audit service.AuditService,
	notifier service.NotificationService,
) DoctorApprovalUsecase {
	return &doctorApprovalUsecase{
		db:         db,
		log:        log,
		tx:         tx,
		doctorRepo: doctorRepo,
		userRepo:   userRepo,
		audit:      audit,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Apply files a pending doctor application for the caller. A user keeps
// a single application, so a rejected applicant cannot apply again.
func (u *doctorApprovalUsecase) Apply(ctx context.Context, req *dto.ApplyDoctorRequest) (*dto.DoctorResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if req.ConsultationFee.IsNegative() {
		return nil, ErrNegativeConsultationFee
	}
	if !req.Availability.Valid() {
		return nil, ErrInvalidAvailability
	}

	existing, err := u.doctorRepo.FindByUserID(ctx, u.db, actor.UserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile of user %s: %+v", actor.UserID, err)
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, ErrAlreadyApplied
	}

	availability := req.Availability
	if len(availability) == 0 {
		availability = entity.DefaultAvailabilitySchedule()
	}

	doctor := &entity.Doctor{
		UserID:               actor.UserID,
		MedicalLicenseNumber: strings.ToUpper(strings.TrimSpace(req.MedicalLicenseNumber)),
		Specialization:       entity.Specialization(req.Specialization),
		DoctorCode:           generateDoctorCode(u.now()),
		ApprovalStatus:       entity.ApprovalStatusPending,
		HospitalAffiliation:  req.HospitalAffiliation,
		Department:           req.Department,
		YearsOfExperience:    req.YearsOfExperience,
		ConsultationFee:      req.ConsultationFee.Round(2),
		Availability:         datatypes.NewJSONType(availability),
		Qualifications:       datatypes.NewJSONSlice(req.Qualifications),
		Bio:                  req.Bio,
		LanguagesSpoken:      datatypes.NewJSONSlice(req.LanguagesSpoken),
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.doctorRepo.Create(ctx, tx, doctor); err != nil {
			switch {
			case repository.IsDuplicateOn(err, repository.ConstraintDoctorsUserID):
				return ErrAlreadyApplied
			case repository.IsDuplicateOn(err, repository.ConstraintDoctorsLicense):
				return ErrLicenseAlreadyExists
			}
			u.log.Warnf("Failed to create doctor application: %+v", err)
			return apperror.Internal(err)
		}

		if err := u.userRepo.UpdateFields(ctx, tx, actor.UserID, map[string]interface{}{
			"account_status": entity.AccountStatusPendingDoctorApproval,
		}); err != nil {
			u.log.Warnf("Failed to mark user %s pending approval: %+v", actor.UserID, err)
			return apperror.Internal(err)
		}

		return u.audit.Record(ctx, tx, service.AuditEntry{
			UserID:   &actor.UserID,
			Action:   entity.AuditActionDoctorApply,
			Entity:   "doctor",
			EntityID: doctor.ID.String(),
			NewValue: doctor.ApprovalStatus,
		})
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Doctor application filed: doctor=%s user=%s", doctor.ID, actor.UserID)
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorApprovalUsecase) ListApplications(ctx context.Context, status string, page dto.PageRequest) (*dto.DoctorListResponse, error) {
	approval := entity.ApprovalStatusPending
	if status != "" {
		approval = entity.ApprovalStatus(status)
		if !approval.IsValid() {
			return nil, apperror.Validation("invalid approval status", map[string]string{
				"status": "must be one of pending, approved, rejected",
			})
		}
	}

	page = page.Normalize()
	doctors, total, err := u.doctorRepo.List(ctx, u.db, entity.DoctorFilter{
		ApprovalStatus: approval,
		Limit:          page.Limit,
		Offset:         page.Offset(),
	})
	if err != nil {
		u.log.Warnf("Failed to list doctor applications: %+v", err)
		return nil, apperror.Internal(err)
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   total,
	}, nil
}

func (u *doctorApprovalUsecase) GetApplication(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.find(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorApprovalUsecase) Approve(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	doctor, err := u.decide(ctx, actor, doctorID, func(d *entity.Doctor) bool {
		return d.Approve(actor.UserID, u.now())
	})
	if err != nil {
		return nil, err
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorApprovalUsecase) Reject(ctx context.Context, doctorID uuid.UUID, reason string) (*dto.DoctorResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	doctor, err := u.decide(ctx, actor, doctorID, func(d *entity.Doctor) bool {
		return d.Reject(actor.UserID, strings.TrimSpace(reason), u.now())
	})
	if err != nil {
		return nil, err
	}
	return converter.DoctorToResponse(doctor), nil
}

// BulkAction applies the same decision to each application independently.
// A failed item is reported and does not undo the others.
func (u *doctorApprovalUsecase) BulkAction(ctx context.Context, req *dto.BulkDoctorActionRequest) (*dto.BulkActionResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}

	res := &dto.BulkActionResponse{Results: make([]dto.BulkActionResult, 0, len(req.DoctorIDs))}
	for _, id := range req.DoctorIDs {
		_, err := u.decide(ctx, actor, id, func(d *entity.Doctor) bool {
			if req.Action == "reject" {
				return d.Reject(actor.UserID, strings.TrimSpace(req.Reason), u.now())
			}
			return d.Approve(actor.UserID, u.now())
		})

		result := dto.BulkActionResult{DoctorID: id, Success: err == nil}
		if err != nil {
			appErr := apperror.As(err)
			if appErr.Kind == apperror.KindInternal {
				u.log.Warnf("Bulk %s of application %s failed: %+v", req.Action, id, err)
			}
			result.Error = appErr.Message
		} else {
			res.Modified++
		}
		res.Results = append(res.Results, result)
	}

	u.log.Infof("Bulk %s of %d applications by %s: %d modified", req.Action, len(req.DoctorIDs), actor.UserID, res.Modified)
	return res, nil
}

// decide applies transition to a pending application and persists it with the
// owning user's new state in one transaction.
func (u *doctorApprovalUsecase) decide(ctx context.Context, actor *entity.Actor, doctorID uuid.UUID, transition func(*entity.Doctor) bool) (*entity.Doctor, error) {
	doctor, err := u.find(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !transition(doctor) {
		return nil, ErrApplicationNotPending
	}

	approved := doctor.IsApproved()
	fields := map[string]interface{}{"account_status": entity.AccountStatusActive}
	action := entity.AuditActionDoctorReject
	if approved {
		fields["doctor_profile_id"] = &doctor.ID
		action = entity.AuditActionDoctorApprove
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		rows, err := u.doctorRepo.UpdateDecision(ctx, tx, doctor)
		if err != nil {
			u.log.Warnf("Failed to update application %s: %+v", doctor.ID, err)
			return apperror.Internal(err)
		}
		if rows == 0 {
			return ErrApplicationNotPending
		}

		if err := u.userRepo.UpdateFields(ctx, tx, doctor.UserID, fields); err != nil {
			u.log.Warnf("Failed to update user %s after decision: %+v", doctor.UserID, err)
			return apperror.Internal(err)
		}

		return u.audit.Record(ctx, tx, service.AuditEntry{
			UserID:   &actor.UserID,
			Action:   action,
			Entity:   "doctor",
			EntityID: doctor.ID.String(),
			OldValue: entity.ApprovalStatusPending,
			NewValue: doctor.ApprovalStatus,
		})
	})
	if err != nil {
		return nil, err
	}

	notice := service.Notice{
		UserID:  doctor.UserID,
		Type:    entity.NotificationDoctorApproved,
		Title:   "Doctor application approved",
		Message: "Your doctor application has been approved",
		Data:    map[string]interface{}{"doctor_id": doctor.ID.String()},
	}
	if !approved {
		notice.Type = entity.NotificationDoctorRejected
		notice.Title = "Doctor application rejected"
		notice.Message = "Your doctor application has been rejected: " + doctor.RejectionReason
	}
	if err := u.notifier.Send(ctx, notice); err != nil {
		u.log.Warnf("Failed to notify user %s of decision: %+v", doctor.UserID, err)
	}

	u.log.Infof("Doctor application %s %s by %s", doctor.ID, doctor.ApprovalStatus, actor.UserID)
	return doctor, nil
}

func (u *doctorApprovalUsecase) find(ctx context.Context, doctorID uuid.UUID) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, apperror.Internal(err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}
