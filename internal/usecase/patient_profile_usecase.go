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

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PatientProfileUsecase interface {
	GetMyProfile(ctx context.Context) (*dto.PatientProfileResponse, error)
	UpdateMyProfile(ctx context.Context, req *dto.UpdatePatientProfileRequest) (*dto.PatientProfileResponse, error)
}

type patientProfileUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	tx          repository.Transactor
	userRepo    repository.UserRepository
	patientRepo repository.PatientRepository
	audit       service.AuditService
}

func NewPatientProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	tx repository.Transactor,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	audit service.AuditService,
) PatientProfileUsecase {
	return &patientProfileUsecase{
		db:          db,
		log:         log,
		tx:          tx,
		userRepo:    userRepo,
		patientRepo: patientRepo,
		audit:       audit,
	}
}

func (u *patientProfileUsecase) GetMyProfile(ctx context.Context) (*dto.PatientProfileResponse, error) {
	patient, err := u.load(ctx)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

// UpdateMyProfile applies the fields present in req. Weight and height are
// rounded to one decimal place before they are stored.
func (u *patientProfileUsecase) UpdateMyProfile(ctx context.Context, req *dto.UpdatePatientProfileRequest) (*dto.PatientProfileResponse, error) {
	patient, err := u.load(ctx)
	if err != nil {
		return nil, err
	}

	oldValue := converter.PatientToResponse(patient)

	userFields := map[string]interface{}{}
	if req.FullName != nil {
		userFields["full_name"] = *req.FullName
		patient.User.FullName = *req.FullName
	}
	if req.Phone != nil {
		userFields["phone"] = *req.Phone
		patient.User.Phone = *req.Phone
	}
	if req.Address != nil {
		userFields["address"] = *req.Address
		patient.User.Address = *req.Address
	}

	if req.Weight != nil {
		patient.SetWeight(*req.Weight)
	}
	if req.Height != nil {
		patient.SetHeight(*req.Height)
	}
	if req.BloodType != nil {
		patient.BloodType = entity.BloodType(*req.BloodType)
	}
	if req.Allergies != nil {
		patient.Allergies = datatypes.NewJSONSlice(*req.Allergies)
	}
	if req.ChronicConditions != nil {
		patient.ChronicConditions = datatypes.NewJSONSlice(*req.ChronicConditions)
	}
	if req.CareModeEnabled != nil {
		patient.CareModeEnabled = *req.CareModeEnabled
	}
	if req.PreferredUnitSystem != nil {
		patient.PreferredUnitSystem = *req.PreferredUnitSystem
	}
	if req.SmokingStatus != nil {
		patient.SmokingStatus = *req.SmokingStatus
	}
	if req.AlcoholConsumption != nil {
		patient.AlcoholConsumption = *req.AlcoholConsumption
	}
	if req.ExerciseFrequency != nil {
		patient.ExerciseFrequency = *req.ExerciseFrequency
	}
	if req.MedicalHistorySummary != nil {
		patient.MedicalHistorySummary = *req.MedicalHistorySummary
	}
	if req.DataSharingConsent != nil {
		patient.DataSharingConsent = *req.DataSharingConsent
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if len(userFields) > 0 {
			if err := u.userRepo.UpdateFields(ctx, tx, patient.UserID, userFields); err != nil {
				u.log.Warnf("Failed to update user %s: %+v", patient.UserID, err)
				return apperror.Internal(err)
			}
		}
		if err := u.patientRepo.Update(ctx, tx, patient); err != nil {
			u.log.Warnf("Failed to update patient profile %s: %+v", patient.ID, err)
			return apperror.Internal(err)
		}
		return u.audit.Record(ctx, tx, service.AuditEntry{
			UserID:    &patient.UserID,
			PatientID: &patient.ID,
			Action:    entity.AuditActionProfileUpdate,
			Entity:    "patient_profile",
			EntityID:  patient.ID.String(),
			OldValue:  oldValue,
			NewValue:  converter.PatientToResponse(patient),
		})
	})
	if err != nil {
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientProfileUsecase) load(ctx context.Context) (*entity.Patient, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsPatient() {
		return nil, ErrPatientProfileRequired
	}

	patient, err := u.patientRepo.FindByID(ctx, u.db, *actor.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile %s: %+v", *actor.PatientID, err)
		return nil, apperror.Internal(err)
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}
