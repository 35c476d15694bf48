package usecase

import (
	"context"

	"healthtech-api/internal/converter"
	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/domain/repository"
	"healthtech-api/pkg/apperror"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SymptomLogUsecase interface {
	Create(ctx context.Context, req *dto.CreateSymptomLogRequest) (*dto.SymptomLogResponse, error)
	List(ctx context.Context, page dto.PageRequest) (*dto.SymptomLogListResponse, error)
}

type symptomLogUsecase struct {
	db      *gorm.DB
	log     *logrus.Logger
	logRepo repository.SymptomLogRepository
}

func NewSymptomLogUsecase(db *gorm.DB, log *logrus.Logger, logRepo repository.SymptomLogRepository) SymptomLogUsecase {
	return &symptomLogUsecase{db: db, log: log, logRepo: logRepo}
}

func (u *symptomLogUsecase) Create(ctx context.Context, req *dto.CreateSymptomLogRequest) (*dto.SymptomLogResponse, error) {
	patientID, err := requirePatient(ctx)
	if err != nil {
		return nil, err
	}
	if req.EndTime != nil && req.EndTime.Before(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}

	symptom := &entity.SymptomLog{
		PatientID:         patientID,
		SymptomType:       req.SymptomType,
		Severity:          req.Severity,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		Duration:          req.Duration,
		Location:          req.Location,
		Triggers:          datatypes.NewJSONSlice(req.Triggers),
		ReliefMethods:     datatypes.NewJSONSlice(req.ReliefMethods),
		Notes:             req.Notes,
		ImpactOnDailyLife: req.ImpactOnDailyLife,
		Pattern:           req.Pattern,
	}
	symptom.ComputeDuration()

	if err := u.logRepo.Create(ctx, u.db, symptom); err != nil {
		u.log.Warnf("Failed to create symptom log: %+v", err)
		return nil, apperror.Internal(err)
	}
	return converter.SymptomLogToResponse(symptom), nil
}

func (u *symptomLogUsecase) List(ctx context.Context, page dto.PageRequest) (*dto.SymptomLogListResponse, error) {
	patientID, err := requirePatient(ctx)
	if err != nil {
		return nil, err
	}

	page = page.Normalize()
	logs, total, err := u.logRepo.ListByPatient(ctx, u.db, patientID, page.Limit, page.Offset())
	if err != nil {
		u.log.Warnf("Failed to list symptom logs: %+v", err)
		return nil, apperror.Internal(err)
	}
	return &dto.SymptomLogListResponse{
		Logs:  converter.SymptomLogsToResponses(logs),
		Total: total,
	}, nil
}
