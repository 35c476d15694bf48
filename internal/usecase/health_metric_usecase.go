package usecase

import (
	"context"
	"encoding/json"
	"time"

	"healthtech-api/internal/converter"
	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/delivery/http/middleware"
	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/domain/repository"
	"healthtech-api/internal/service"
	"healthtech-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultLatestLimit = 10
	defaultTrendWindow = 30 * 24 * time.Hour
)

type HealthMetricUsecase interface {
	Record(ctx context.Context, req *dto.RecordHealthMetricRequest) (*dto.HealthMetricResponse, error)
	List(ctx context.Context, query *dto.HealthMetricQuery) (*dto.HealthMetricListResponse, error)
	Latest(ctx context.Context, patientID *uuid.UUID, types []string, limit int) (*dto.HealthMetricListResponse, error)
	Trend(ctx context.Context, query *dto.MetricTrendQuery) (*dto.MetricTrendResponse, error)
}

type healthMetricUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	metricRepo  repository.HealthMetricRepository
	patientRepo repository.PatientRepository
	authorizer  *service.Authorizer
	alerts      service.AlertPublisher
	notifier    service.NotificationService
	now         func() time.Time
}

func NewHealthMetricUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	metricRepo repository.HealthMetricRepository,
	patientRepo repository.PatientRepository,
	authorizer *service.Authorizer,
	alerts service.AlertPublisher,
	notifier service.NotificationService,
) HealthMetricUsecase {
	return &healthMetricUsecase{
		db:          db,
		log:         log,
		metricRepo:  metricRepo,
		patientRepo: patientRepo,
		authorizer:  authorizer,
		alerts:      alerts,
		notifier:    notifier,
		now:         time.Now,
	}
}

// Record stores a measurement for the caller or, through the ledger, for one
// of a doctor's patients. Abnormal values are flagged before the write and
// announced after it.
func (u *healthMetricUsecase) Record(ctx context.Context, req *dto.RecordHealthMetricRequest) (*dto.HealthMetricResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	patientID, err := targetPatient(actor, req.PatientID)
	if err != nil {
		return nil, err
	}

	metricType := entity.MetricType(req.MetricType)
	if !validMetricValue(metricType, req.Value) {
		return nil, ErrInvalidMetricValue
	}

	relation, err := u.authorizer.Authorize(ctx, actor, patientID, service.ActionWriteHealthMetrics)
	if err != nil {
		return nil, err
	}

	unit := req.Unit
	if unit == "" {
		unit = metricType.DefaultUnit()
	}
	timestamp := u.now()
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	}
	source := entity.MetricSourceManual
	if req.Source != "" {
		source = entity.MetricSource(req.Source)
	}

	metric := &entity.HealthMetric{
		PatientID:    patientID,
		UserID:       actor.UserID,
		MetricType:   metricType,
		Value:        datatypes.JSON(req.Value),
		Unit:         unit,
		Timestamp:    timestamp,
		Source:       source,
		DeviceID:     req.DeviceID,
		QualityScore: req.QualityScore,
		IsAbnormal:   entity.DetectAbnormal(metricType, req.Value),
		Notes:        req.Notes,
		Tags:         datatypes.NewJSONSlice(req.Tags),
		RelationID:   relationRef(relation),
	}

	if err := u.metricRepo.Create(ctx, u.db, metric); err != nil {
		u.log.Warnf("Failed to record %s for patient %s: %+v", metricType, patientID, err)
		return nil, apperror.Internal(err)
	}

	if metric.IsAbnormal {
		u.announceAbnormal(ctx, metric)
	}

	return converter.HealthMetricToResponse(metric), nil
}

func (u *healthMetricUsecase) announceAbnormal(ctx context.Context, metric *entity.HealthMetric) {
	u.log.WithFields(logrus.Fields{
		"metric_id":   metric.ID,
		"patient_id":  metric.PatientID,
		"metric_type": metric.MetricType,
	}).Info("Abnormal health metric recorded")

	if err := u.alerts.PublishAbnormal(ctx, metric); err != nil {
		u.log.Warnf("Failed to publish abnormal metric %s: %+v", metric.ID, err)
	}

	patient, err := u.patientRepo.FindByID(ctx, u.db, metric.PatientID)
	if err != nil || patient == nil {
		u.log.Warnf("Failed to resolve patient %s for abnormal metric notice: %+v", metric.PatientID, err)
		return
	}
	err = u.notifier.Send(ctx, service.Notice{
		UserID:  patient.UserID,
		Type:    entity.NotificationAbnormalMetric,
		Title:   "Abnormal reading",
		Message: "A recent " + string(metric.MetricType) + " reading is outside the normal range",
		Data: map[string]interface{}{
			"metric_id":   metric.ID.String(),
			"metric_type": string(metric.MetricType),
			"value":       string(metric.Value),
			"unit":        metric.Unit,
		},
	})
	if err != nil {
		u.log.Warnf("Failed to notify abnormal metric %s: %+v", metric.ID, err)
	}
}

// List pages a patient's metrics, newest first. A doctor without a qualifying
// relation gets Forbidden, never an empty page.
func (u *healthMetricUsecase) List(ctx context.Context, query *dto.HealthMetricQuery) (*dto.HealthMetricListResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	patientID, err := targetPatient(actor, query.PatientID)
	if err != nil {
		return nil, err
	}
	if query.From != nil && query.To != nil && query.To.Before(*query.From) {
		return nil, ErrInvalidTimeRange
	}
	if _, err := u.authorizer.Authorize(ctx, actor, patientID, service.ActionReadHealthMetrics); err != nil {
		return nil, err
	}

	page := query.PageRequest.Normalize()
	metrics, total, err := u.metricRepo.List(ctx, u.db, entity.HealthMetricFilter{
		PatientID:  patientID,
		MetricType: entity.MetricType(query.MetricType),
		From:       query.From,
		To:         query.To,
		Limit:      page.Limit,
		Offset:     page.Offset(),
	})
	if err != nil {
		u.log.Warnf("Failed to list metrics of patient %s: %+v", patientID, err)
		return nil, apperror.Internal(err)
	}

	return &dto.HealthMetricListResponse{
		Metrics: converter.HealthMetricsToResponses(metrics),
		Total:   total,
	}, nil
}

func (u *healthMetricUsecase) Latest(ctx context.Context, patientID *uuid.UUID, types []string, limit int) (*dto.HealthMetricListResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	target, err := targetPatient(actor, patientID)
	if err != nil {
		return nil, err
	}
	if _, err := u.authorizer.Authorize(ctx, actor, target, service.ActionReadHealthMetrics); err != nil {
		return nil, err
	}

	if limit < 1 || limit > dto.MaxPageLimit {
		limit = defaultLatestLimit
	}
	metricTypes := make([]entity.MetricType, 0, len(types))
	for _, t := range types {
		mt := entity.MetricType(t)
		if !mt.IsValid() {
			return nil, apperror.Validation("invalid metric type", map[string]string{"types": "unknown metric type " + t})
		}
		metricTypes = append(metricTypes, mt)
	}

	metrics, err := u.metricRepo.Latest(ctx, u.db, target, metricTypes, limit)
	if err != nil {
		u.log.Warnf("Failed to load latest metrics of patient %s: %+v", target, err)
		return nil, apperror.Internal(err)
	}

	return &dto.HealthMetricListResponse{
		Metrics: converter.HealthMetricsToResponses(metrics),
		Total:   int64(len(metrics)),
	}, nil
}

// Trend returns one metric type over a window, oldest first, for charting.
func (u *healthMetricUsecase) Trend(ctx context.Context, query *dto.MetricTrendQuery) (*dto.MetricTrendResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	metricType := entity.MetricType(query.MetricType)
	if !metricType.IsValid() {
		return nil, apperror.Validation("invalid metric type", map[string]string{"metric_type": "unknown metric type " + query.MetricType})
	}
	patientID, err := targetPatient(actor, query.PatientID)
	if err != nil {
		return nil, err
	}

	to := u.now()
	if query.To != nil {
		to = *query.To
	}
	from := to.Add(-defaultTrendWindow)
	if query.From != nil {
		from = *query.From
	}
	if to.Before(from) {
		return nil, ErrInvalidTimeRange
	}
	if _, err := u.authorizer.Authorize(ctx, actor, patientID, service.ActionReadHealthMetrics); err != nil {
		return nil, err
	}

	metrics, err := u.metricRepo.Trend(ctx, u.db, patientID, metricType, from, to)
	if err != nil {
		u.log.Warnf("Failed to load %s trend of patient %s: %+v", metricType, patientID, err)
		return nil, apperror.Internal(err)
	}

	unit := metricType.DefaultUnit()
	if len(metrics) > 0 && metrics[0].Unit != "" {
		unit = metrics[0].Unit
	}
	return &dto.MetricTrendResponse{
		PatientID:  patientID,
		MetricType: string(metricType),
		Unit:       unit,
		From:       from,
		To:         to,
		Points:     converter.HealthMetricsToTrendPoints(metrics),
	}, nil
}

// validMetricValue accepts a JSON number, or for blood pressure an object
// carrying numeric systolic and diastolic readings.
func validMetricValue(t entity.MetricType, value json.RawMessage) bool {
	if t == entity.MetricBloodPressure {
		var bp map[string]json.RawMessage
		if err := json.Unmarshal(value, &bp); err != nil {
			return false
		}
		for _, key := range []string{"systolic", "diastolic"} {
			var n float64
			raw, ok := bp[key]
			if !ok || json.Unmarshal(raw, &n) != nil {
				return false
			}
		}
		return true
	}
	var n float64
	return json.Unmarshal(value, &n) == nil
}
