package repository

import (
	"context"

	"healthtech-api/internal/domain/entity"
	domainRepo "healthtech-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type medicalRecordRepository struct{}

func NewMedicalRecordRepository() domainRepo.MedicalRecordRepository {
	return &medicalRecordRepository{}
}

func (r *medicalRecordRepository) Create(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *medicalRecordRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.MedicalRecord, error) {
	return first[entity.MedicalRecord](db.WithContext(ctx).Where("id = ?", id))
}

func (r *medicalRecordRepository) List(ctx context.Context, db *gorm.DB, filter entity.MedicalRecordFilter) ([]entity.MedicalRecord, int64, error) {
	query := db.WithContext(ctx).Model(&entity.MedicalRecord{}).Where("patient_id = ?", filter.PatientID)
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	if filter.Status != "" {
		query = query.Where("record_status = ?", filter.Status)
	}
	return findPage[entity.MedicalRecord](ctx, query, "visit_date DESC", filter.Limit, filter.Offset)
}

func (r *medicalRecordRepository) UpdateStatus(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error {
	return db.WithContext(ctx).Model(&entity.MedicalRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"record_status":   record.RecordStatus,
			"last_updated_by": record.LastUpdatedBy,
		}).Error
}
