package repository

import (
	"context"

	"healthtech-api/internal/domain/entity"
	domainRepo "healthtech-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type symptomLogRepository struct{}

func NewSymptomLogRepository() domainRepo.SymptomLogRepository {
	return &symptomLogRepository{}
}

func (r *symptomLogRepository) Create(ctx context.Context, db *gorm.DB, log *entity.SymptomLog) error {
	return db.WithContext(ctx).Create(log).Error
}

func (r *symptomLogRepository) ListByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID, limit, offset int) ([]entity.SymptomLog, int64, error) {
	query := db.WithContext(ctx).Model(&entity.SymptomLog{}).Where("patient_id = ?", patientID)
	return findPage[entity.SymptomLog](ctx, query, "start_time DESC", limit, offset)
}
