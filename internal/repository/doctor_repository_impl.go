package repository

import (
	"context"

	"healthtech-api/internal/domain/entity"
	domainRepo "healthtech-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return translateError(db.WithContext(ctx).Omit("User").Create(doctor).Error)
}

func (r *doctorRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	return first[entity.Doctor](db.WithContext(ctx).Preload("User").Where("id = ?", id))
}

func (r *doctorRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error) {
	return first[entity.Doctor](db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *doctorRepository) List(ctx context.Context, db *gorm.DB, filter entity.DoctorFilter) ([]entity.Doctor, int64, error) {
	query := db.WithContext(ctx).Model(&entity.Doctor{})
	if filter.ApprovalStatus != "" {
		query = query.Where("approval_status = ?", filter.ApprovalStatus)
	}
	return findPage[entity.Doctor](ctx, query, "created_at ASC", filter.Limit, filter.Offset, "User")
}

// UpdateDecision only touches rows still pending, so two admins deciding the
// same application cannot both win.
func (r *doctorRepository) UpdateDecision(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Doctor{}).
		Where("id = ? AND approval_status = ?", doctor.ID, entity.ApprovalStatusPending).
		Updates(map[string]interface{}{
			"approval_status":  doctor.ApprovalStatus,
			"approved_by":      doctor.ApprovedBy,
			"approval_date":    doctor.ApprovalDate,
			"rejection_reason": doctor.RejectionReason,
		})
	return result.RowsAffected, result.Error
}

func (r *doctorRepository) UpdateProfile(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return db.WithContext(ctx).Model(&entity.Doctor{}).
		Where("id = ?", doctor.ID).
		Updates(map[string]interface{}{
			"hospital_affiliation": doctor.HospitalAffiliation,
			"department":           doctor.Department,
			"years_of_experience":  doctor.YearsOfExperience,
			"consultation_fee":     doctor.ConsultationFee,
			"availability":         doctor.Availability,
			"qualifications":       doctor.Qualifications,
			"bio":                  doctor.Bio,
			"languages_spoken":     doctor.LanguagesSpoken,
		}).Error
}
