package usecase

import (
	"context"

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

type AdminUsecase interface {
	ListUsers(ctx context.Context, status, search string, page dto.PageRequest) (*dto.UserListResponse, error)
	UpdateUserStatus(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserStatusRequest) (*dto.UserResponse, error)
	ListPatients(ctx context.Context, search string, page dto.PageRequest) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, patientID uuid.UUID, req *dto.AdminUpdatePatientRequest) (*dto.PatientProfileResponse, error)
	DeletePatient(ctx context.Context, patientID uuid.UUID) error
}

type adminUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	tx          repository.Transactor
	userRepo    repository.UserRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	tokens      service.TokenStore
	audit       service.AuditService
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	tx repository.Transactor,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	tokens service.TokenStore,
	audit service.AuditService,
) AdminUsecase {
	return &adminUsecase{
		db:          db,
		log:         log,
		tx:          tx,
		userRepo:    userRepo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		tokens:      tokens,
		audit:       audit,
	}
}

func (u *adminUsecase) ListUsers(ctx context.Context, status, search string, page dto.PageRequest) (*dto.UserListResponse, error) {
	filter := entity.UserFilter{Search: search}
	if status != "" {
		filter.AccountStatus = entity.AccountStatus(status)
		if !filter.AccountStatus.IsValid() {
			return nil, ErrInvalidUserStatus
		}
	}

	page = page.Normalize()
	filter.Limit = page.Limit
	filter.Offset = page.Offset()

	users, total, err := u.userRepo.List(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, apperror.Internal(err)
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: total,
	}, nil
}

// UpdateUserStatus changes an account status. Suspending a user also drops
// every session it holds.
func (u *adminUsecase) UpdateUserStatus(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserStatusRequest) (*dto.UserResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	status := entity.AccountStatus(req.AccountStatus)
	if !status.IsValid() {
		return nil, ErrInvalidUserStatus
	}

	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	before := user.AccountStatus
	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.userRepo.UpdateFields(ctx, tx, user.ID, map[string]interface{}{"account_status": status}); err != nil {
			u.log.Warnf("Failed to update status of user %s: %+v", user.ID, err)
			return apperror.Internal(err)
		}
		return u.audit.Record(ctx, tx, service.AuditEntry{
			UserID:   &actor.UserID,
			Action:   entity.AuditActionUserStatusUpdate,
			Entity:   "user",
			EntityID: user.ID.String(),
			OldValue: before,
			NewValue: status,
		})
	})
	if err != nil {
		return nil, err
	}
	user.AccountStatus = status

	if status == entity.AccountStatusSuspended {
		if err := u.tokens.RevokeAll(ctx, user.ID); err != nil {
			u.log.Warnf("Failed to revoke sessions of suspended user %s: %+v", user.ID, err)
		}
	}

	u.log.Infof("User %s status %s -> %s by %s", user.ID, before, status, actor.UserID)
	return converter.UserToResponse(user), nil
}

func (u *adminUsecase) ListPatients(ctx context.Context, search string, page dto.PageRequest) (*dto.PatientListResponse, error) {
	page = page.Normalize()
	patients, total, err := u.patientRepo.List(ctx, u.db, entity.PatientFilter{
		Search: search,
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, apperror.Internal(err)
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    total,
	}, nil
}

// UpdatePatient edits a patient's clinical settings. A primary doctor must
// be an approved doctor.
func (u *adminUsecase) UpdatePatient(ctx context.Context, patientID uuid.UUID, req *dto.AdminUpdatePatientRequest) (*dto.PatientProfileResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}

	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, apperror.Internal(err)
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.PrimaryDoctorID != nil {
		doctor, err := u.doctorRepo.FindByID(ctx, u.db, *req.PrimaryDoctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor %s: %+v", *req.PrimaryDoctorID, err)
			return nil, apperror.Internal(err)
		}
		if doctor == nil || !doctor.IsApproved() {
			return nil, ErrPrimaryDoctorInvalid
		}
	}

	oldValue := converter.PatientToResponse(patient)

	if req.Weight != nil {
		patient.SetWeight(*req.Weight)
	}
	if req.Height != nil {
		patient.SetHeight(*req.Height)
	}
	if req.BloodType != nil {
		patient.BloodType = entity.BloodType(*req.BloodType)
	}
	if req.CareModeEnabled != nil {
		patient.CareModeEnabled = *req.CareModeEnabled
	}
	if req.PreferredUnitSystem != nil {
		patient.PreferredUnitSystem = *req.PreferredUnitSystem
	}
	if req.PrimaryDoctorID != nil {
		doctorID := *req.PrimaryDoctorID
		patient.PrimaryDoctorID = &doctorID
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.patientRepo.Update(ctx, tx, patient); err != nil {
			u.log.Warnf("Failed to update patient %s: %+v", patientID, err)
			return apperror.Internal(err)
		}
		return u.audit.Record(ctx, tx, service.AuditEntry{
			UserID:    &actor.UserID,
			PatientID: &patient.ID,
			Action:    entity.AuditActionPatientUpdate,
			Entity:    "patient",
			EntityID:  patient.ID.String(),
			OldValue:  oldValue,
			NewValue:  converter.PatientToResponse(patient),
		})
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Patient %s updated by admin %s", patient.ID, actor.UserID)
	return converter.PatientToResponse(patient), nil
}

// DeletePatient removes the profile and clears the owning user's pointer to it.
func (u *adminUsecase) DeletePatient(ctx context.Context, patientID uuid.UUID) error {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return err
	}

	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return apperror.Internal(err)
	}
	if patient == nil {
		return ErrPatientNotFound
	}
	userID := patient.UserID

	return u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		rows, err := u.patientRepo.Delete(ctx, tx, patientID)
		if err != nil {
			u.log.Warnf("Failed to delete patient %s: %+v", patientID, err)
			return apperror.Internal(err)
		}
		if rows == 0 {
			return ErrPatientNotFound
		}

		var none *uuid.UUID
		if err := u.userRepo.UpdateFields(ctx, tx, userID, map[string]interface{}{"patient_profile_id": none}); err != nil {
			u.log.Warnf("Failed to clear patient profile of user %s: %+v", userID, err)
			return apperror.Internal(err)
		}

		return u.audit.Record(ctx, tx, service.AuditEntry{
			UserID:    &actor.UserID,
			PatientID: &patientID,
			Action:    entity.AuditActionPatientDelete,
			Entity:    "patient",
			EntityID:  patientID.String(),
		})
	})
}
