package usecase

import (
	"context"
	"strings"

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

type DoctorProfileUsecase interface {
	GetMyProfile(ctx context.Context) (*dto.DoctorResponse, error)
	UpdateMyProfile(ctx context.Context, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorResponse, error)
}

type doctorProfileUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	tx         repository.Transactor
	doctorRepo repository.DoctorRepository
	audit      service.AuditService
}

func NewDoctorProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	tx repository.Transactor,
	doctorRepo repository.DoctorRepository,
	audit service.AuditService,
) DoctorProfileUsecase {
	return &doctorProfileUsecase{
		db:         db,
		log:        log,
		tx:         tx,
		doctorRepo: doctorRepo,
		audit:      audit,
	}
}

func (u *doctorProfileUsecase) GetMyProfile(ctx context.Context) (*dto.DoctorResponse, error) {
	_, doctor, err := u.load(ctx)
	if err != nil {
		return nil, err
	}
	return converter.DoctorToResponse(doctor), nil
}

// UpdateMyProfile edits the practice details of an approved doctor. Changing
// the license number or the specialization goes through an admin instead.
func (u *doctorProfileUsecase) UpdateMyProfile(ctx context.Context, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorResponse, error) {
	actor, doctor, err := u.load(ctx)
	if err != nil {
		return nil, err
	}

	if req.MedicalLicenseNumber != nil && !strings.EqualFold(strings.TrimSpace(*req.MedicalLicenseNumber), doctor.MedicalLicenseNumber) {
		return nil, ErrLicenseChangeForbidden
	}
	if req.Specialization != nil && entity.Specialization(*req.Specialization) != doctor.Specialization {
		return nil, ErrSpecializationChange
	}
	if req.ConsultationFee != nil && req.ConsultationFee.IsNegative() {
		return nil, ErrNegativeConsultationFee
	}
	if req.Availability != nil && !req.Availability.Valid() {
		return nil, ErrInvalidAvailability
	}

	oldValue := converter.DoctorToResponse(doctor)

	if req.HospitalAffiliation != nil {
		doctor.HospitalAffiliation = *req.HospitalAffiliation
	}
	if req.Department != nil {
		doctor.Department = *req.Department
	}
	if req.YearsOfExperience != nil {
		doctor.YearsOfExperience = *req.YearsOfExperience
	}
	if req.ConsultationFee != nil {
		doctor.ConsultationFee = req.ConsultationFee.Round(2)
	}
	if req.Availability != nil {
		// days left out keep their current schedule
		schedule := doctor.Availability.Data()
		if schedule == nil {
			schedule = entity.DefaultAvailabilitySchedule()
		}
		merged := make(entity.AvailabilitySchedule, len(schedule))
		for day, s := range schedule {
			merged[day] = s
		}
		for day, s := range *req.Availability {
			merged[day] = s
		}
		doctor.Availability = datatypes.NewJSONType(merged)
	}
	if req.Qualifications != nil {
		doctor.Qualifications = datatypes.NewJSONSlice(*req.Qualifications)
	}
	if req.Bio != nil {
		doctor.Bio = *req.Bio
	}
	if req.LanguagesSpoken != nil {
		doctor.LanguagesSpoken = datatypes.NewJSONSlice(*req.LanguagesSpoken)
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.doctorRepo.UpdateProfile(ctx, tx, doctor); err != nil {
			u.log.Warnf("Failed to update doctor profile %s: %+v", doctor.ID, err)
			return apperror.Internal(err)
		}
		return u.audit.Record(ctx, tx, service.AuditEntry{
			UserID:   &actor.UserID,
			Action:   entity.AuditActionDoctorProfile,
			Entity:   "doctor",
			EntityID: doctor.ID.String(),
			OldValue: oldValue,
			NewValue: converter.DoctorToResponse(doctor),
		})
	})
	if err != nil {
		return nil, err
	}

	u.log.WithField("doctor_id", doctor.ID).Info("Doctor profile updated")
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorProfileUsecase) load(ctx context.Context) (*entity.Actor, *entity.Doctor, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, nil, err
	}
	if !actor.IsDoctor() {
		return nil, nil, ErrDoctorProfileRequired
	}

	doctor, err := u.doctorRepo.FindByID(ctx, u.db, *actor.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", *actor.DoctorID, err)
		return nil, nil, apperror.Internal(err)
	}
	if doctor == nil {
		return nil, nil, ErrDoctorNotFound
	}
	return actor, doctor, nil
}
