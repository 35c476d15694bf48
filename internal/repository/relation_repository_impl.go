package repository

import (
	"context"

	"healthtech-api/internal/domain/entity"
	domainRepo "healthtech-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type relationRepository struct{}

func NewRelationRepository() domainRepo.RelationRepository {
	return &relationRepository{}
}

func (r *relationRepository) Create(ctx context.Context, db *gorm.DB, relation *entity.DoctorPatientRelation) error {
	return translateError(db.WithContext(ctx).Omit("Doctor", "Patient").Create(relation).Error)
}

func (r *relationRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.DoctorPatientRelation, error) {
	return first[entity.DoctorPatientRelation](db.WithContext(ctx).Preload("Doctor").Preload("Patient").Where("id = ?", id))
}

func (r *relationRepository) FindActive(ctx context.Context, db *gorm.DB, doctorID, patientID uuid.UUID) (*entity.DoctorPatientRelation, error) {
	return first[entity.DoctorPatientRelation](db.WithContext(ctx).
		Where("doctor_id = ? AND patient_id = ? AND status = ?", doctorID, patientID, entity.RelationStatusActive))
}

// UpdateStatus is a compare-and-set on status. The partial unique index on
// active pairs makes a concurrent second activation fail with a duplicate key.
func (r *relationRepository) UpdateStatus(ctx context.Context, db *gorm.DB, relation *entity.DoctorPatientRelation, from entity.RelationStatus) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.DoctorPatientRelation{}).
		Where("id = ? AND status = ?", relation.ID, from).
		Updates(map[string]interface{}{
			"status":          relation.Status,
			"start_date":      relation.StartDate,
			"end_date":        relation.EndDate,
			"last_updated_by": relation.LastUpdatedBy,
		})
	return result.RowsAffected, translateError(result.Error)
}

func (r *relationRepository) UpdatePermissions(ctx context.Context, db *gorm.DB, relation *entity.DoctorPatientRelation) error {
	p := relation.Permissions
	return db.WithContext(ctx).Model(&entity.DoctorPatientRelation{}).
		Where("id = ?", relation.ID).
		Updates(map[string]interface{}{
			"perm_view_medical_records":  p.ViewMedicalRecords,
			"perm_write_prescriptions":   p.WritePrescriptions,
			"perm_view_health_metrics":   p.ViewHealthMetrics,
			"perm_add_medical_notes":     p.AddMedicalNotes,
			"perm_schedule_appointments": p.ScheduleAppointments,
			"last_updated_by":            relation.LastUpdatedBy,
		}).Error
}

func (r *relationRepository) List(ctx context.Context, db *gorm.DB, filter domainRepo.RelationFilter) ([]entity.DoctorPatientRelation, error) {
	query := db.WithContext(ctx).Preload("Doctor.User").Preload("Patient.User")
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var relations []entity.DoctorPatientRelation
	if err := query.Order("created_at DESC").Find(&relations).Error; err != nil {
		return nil, err
	}
	return relations, nil
}
