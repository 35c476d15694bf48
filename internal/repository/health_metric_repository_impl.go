package repository

import (
	"context"
	"time"

	"healthtech-api/internal/domain/entity"
	domainRepo "healthtech-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type healthMetricRepository struct{}

func NewHealthMetricRepository() domainRepo.HealthMetricRepository {
	return &healthMetricRepository{}
}

func (r *healthMetricRepository) Create(ctx context.Context, db *gorm.DB, metric *entity.HealthMetric) error {
	return db.WithContext(ctx).Create(metric).Error
}

func (r *healthMetricRepository) List(ctx context.Context, db *gorm.DB, filter entity.HealthMetricFilter) ([]entity.HealthMetric, int64, error) {
	query := db.WithContext(ctx).Model(&entity.HealthMetric{}).Where("patient_id = ?", filter.PatientID)
	if filter.MetricType != "" {
		query = query.Where("metric_type = ?", filter.MetricType)
	}
	if filter.From != nil {
		query = query.Where("timestamp >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("timestamp <= ?", *filter.To)
	}
	return findPage[entity.HealthMetric](ctx, query, "timestamp DESC", filter.Limit, filter.Offset)
}

func (r *healthMetricRepository) Latest(ctx context.Context, db *gorm.DB, patientID uuid.UUID, types []entity.MetricType, limit int) ([]entity.HealthMetric, error) {
	query := db.WithContext(ctx).Where("patient_id = ?", patientID)
	if len(types) > 0 {
		query = query.Where("metric_type IN ?", types)
	}

	var metrics []entity.HealthMetric
	if err := query.Order("timestamp DESC").Limit(limit).Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}

func (r *healthMetricRepository) Trend(ctx context.Context, db *gorm.DB, patientID uuid.UUID, metricType entity.MetricType, from, to time.Time) ([]entity.HealthMetric, error) {
	var metrics []entity.HealthMetric
	err := db.WithContext(ctx).
		Select("id", "patient_id", "metric_type", "value", "unit", "timestamp").
		Where("patient_id = ? AND metric_type = ?", patientID, metricType).
		Where("timestamp BETWEEN ? AND ?", from, to).
		Order("timestamp ASC").
		Find(&metrics).Error
	if err != nil {
		return nil, err
	}
	return metrics, nil
}
