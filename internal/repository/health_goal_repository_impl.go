package repository

import (
	"context"

	"healthtech-api/internal/domain/entity"
	domainRepo "healthtech-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type healthGoalRepository struct{}

func NewHealthGoalRepository() domainRepo.HealthGoalRepository {
	return &healthGoalRepository{}
}

func (r *healthGoalRepository) Create(ctx context.Context, db *gorm.DB, goal *entity.HealthGoal) error {
	return db.WithContext(ctx).Create(goal).Error
}

func (r *healthGoalRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.HealthGoal, error) {
	return first[entity.HealthGoal](db.WithContext(ctx).Where("id = ?", id))
}

func (r *healthGoalRepository) ListByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID, activeOnly bool) ([]entity.HealthGoal, error) {
	query := db.WithContext(ctx).Where("patient_id = ?", patientID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var goals []entity.HealthGoal
	if err := query.Order("target_date ASC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *healthGoalRepository) Update(ctx context.Context, db *gorm.DB, goal *entity.HealthGoal) error {
	return db.WithContext(ctx).Save(goal).Error
}
