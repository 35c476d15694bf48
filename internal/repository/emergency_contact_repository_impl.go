package repository

import (
	"context"

	"healthtech-api/internal/domain/entity"
	domainRepo "healthtech-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type emergencyContactRepository struct{}

func NewEmergencyContactRepository() domainRepo.EmergencyContactRepository {
	return &emergencyContactRepository{}
}

func (r *emergencyContactRepository) Create(ctx context.Context, db *gorm.DB, contact *entity.EmergencyContact) error {
	return translateError(db.WithContext(ctx).Create(contact).Error)
}

func (r *emergencyContactRepository) ListByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.EmergencyContact, error) {
	var contacts []entity.EmergencyContact
	err := db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("is_primary DESC, created_at ASC").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *emergencyContactRepository) ClearPrimary(ctx context.Context, db *gorm.DB, patientID uuid.UUID) error {
	return db.WithContext(ctx).Model(&entity.EmergencyContact{}).
		Where("patient_id = ? AND is_primary", patientID).
		Update("is_primary", false).Error
}

func (r *emergencyContactRepository) Delete(ctx context.Context, db *gorm.DB, patientID, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).
		Where("id = ? AND patient_id = ?", id, patientID).
		Delete(&entity.EmergencyContact{})
	return result.RowsAffected, result.Error
}
