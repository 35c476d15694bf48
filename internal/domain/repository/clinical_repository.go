package repository

import (
	"context"
	"time"

	"healthtech-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HealthMetricRepository interface {
	Create(ctx context.Context, db *gorm.DB, metric *entity.HealthMetric) error
	List(ctx context.Context, db *gorm.DB, filter entity.HealthMetricFilter) ([]entity.HealthMetric, int64, error)
	Latest(ctx context.Context, db *gorm.DB, patientID uuid.UUID, types []entity.MetricType, limit int) ([]entity.HealthMetric, error)
	// Trend returns one metric type inside [from, to], oldest first.
	Trend(ctx context.Context, db *gorm.DB, patientID uuid.UUID, metricType entity.MetricType, from, to time.Time) ([]entity.HealthMetric, error)
}

type MedicalRecordRepository interface {
	Create(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.MedicalRecord, error)
	List(ctx context.Context, db *gorm.DB, filter entity.MedicalRecordFilter) ([]entity.MedicalRecord, int64, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error
}

type SymptomLogRepository interface {
	Create(ctx context.Context, db *gorm.DB, log *entity.SymptomLog) error
	ListByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID, limit, offset int) ([]entity.SymptomLog, int64, error)
}

type HealthGoalRepository interface {
	Create(ctx context.Context, db *gorm.DB, goal *entity.HealthGoal) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.HealthGoal, error)
	ListByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID, activeOnly bool) ([]entity.HealthGoal, error)
	Update(ctx context.Context, db *gorm.DB, goal *entity.HealthGoal) error
}
