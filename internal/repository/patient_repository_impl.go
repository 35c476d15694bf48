package repository

import (
	"context"

	"healthtech-api/internal/domain/entity"
	domainRepo "healthtech-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return translateError(db.WithContext(ctx).Omit("User").Create(patient).Error)
}

func (r *patientRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	return first[entity.Patient](db.WithContext(ctx).Preload("User").Where("id = ?", id))
}

func (r *patientRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Patient, error) {
	return first[entity.Patient](db.WithContext(ctx).Preload("User").Where("user_id = ?", userID))
}

func (r *patientRepository) Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return translateError(db.WithContext(ctx).Omit("User").Save(patient).Error)
}

func (r *patientRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Patient{})
	return result.RowsAffected, result.Error
}

func (r *patientRepository) List(ctx context.Context, db *gorm.DB, filter entity.PatientFilter) ([]entity.Patient, int64, error) {
	query := db.WithContext(ctx).Model(&entity.Patient{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Joins("JOIN users ON users.id = patients.user_id").
			Where("users.full_name ILIKE ? OR patients.patient_code ILIKE ?", like, like)
	}
	return findPage[entity.Patient](ctx, query, "patients.created_at DESC", filter.Limit, filter.Offset, "User")
}
