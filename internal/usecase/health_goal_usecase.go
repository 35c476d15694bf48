package usecase

import (
	"context"
	"time"

	"healthtech-api/internal/converter"
	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/delivery/http/middleware"
	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/domain/repository"
	"healthtech-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type HealthGoalUsecase interface {
	Create(ctx context.Context, req *dto.CreateHealthGoalRequest) (*dto.HealthGoalResponse, error)
	List(ctx context.Context, activeOnly bool) (*dto.HealthGoalListResponse, error)
	UpdateProgress(ctx context.Context, goalID uuid.UUID, req *dto.UpdateGoalProgressRequest) (*dto.HealthGoalResponse, error)
}

type healthGoalUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	goalRepo repository.HealthGoalRepository
	now      func() time.Time
}

func NewHealthGoalUsecase(db *gorm.DB, log *logrus.Logger, goalRepo repository.HealthGoalRepository) HealthGoalUsecase {
	return &healthGoalUsecase{db: db, log: log, goalRepo: goalRepo, now: time.Now}
}

func (u *healthGoalUsecase) Create(ctx context.Context, req *dto.CreateHealthGoalRequest) (*dto.HealthGoalResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsPatient() {
		return nil, ErrPatientProfileRequired
	}

	now := u.now()
	start := req.StartDate
	if start.IsZero() {
		start = now
	}
	if req.TargetDate.Before(start) {
		return nil, ErrInvalidGoalDates
	}

	frequency := req.Frequency
	if frequency == "" {
		frequency = "daily"
	}
	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}

	goal := &entity.HealthGoal{
		PatientID:   *actor.PatientID,
		UserID:      actor.UserID,
		GoalType:    entity.GoalType(req.GoalType),
		Title:       req.Title,
		Description: req.Description,
		TargetValue: req.TargetValue,
		StartDate:   start,
		TargetDate:  req.TargetDate,
		Frequency:   frequency,
		Priority:    priority,
		IsActive:    true,
		Notes:       req.Notes,
	}
	goal.UpdateProgress(req.CurrentValue, now)

	if err := u.goalRepo.Create(ctx, u.db, goal); err != nil {
		u.log.Warnf("Failed to create health goal: %+v", err)
		return nil, apperror.Internal(err)
	}
	return converter.HealthGoalToResponse(goal, now), nil
}

func (u *healthGoalUsecase) List(ctx context.Context, activeOnly bool) (*dto.HealthGoalListResponse, error) {
	patientID, err := requirePatient(ctx)
	if err != nil {
		return nil, err
	}

	goals, err := u.goalRepo.ListByPatient(ctx, u.db, patientID, activeOnly)
	if err != nil {
		u.log.Warnf("Failed to list health goals: %+v", err)
		return nil, apperror.Internal(err)
	}
	return &dto.HealthGoalListResponse{
		Goals: converter.HealthGoalsToResponses(goals, u.now()),
		Total: len(goals),
	}, nil
}

// UpdateProgress records a new current value on one of the caller's goals.
// Goals of other patients read as not found.
func (u *healthGoalUsecase) UpdateProgress(ctx context.Context, goalID uuid.UUID, req *dto.UpdateGoalProgressRequest) (*dto.HealthGoalResponse, error) {
	patientID, err := requirePatient(ctx)
	if err != nil {
		return nil, err
	}

	goal, err := u.goalRepo.FindByID(ctx, u.db, goalID)
	if err != nil {
		u.log.Warnf("Failed to find health goal %s: %+v", goalID, err)
		return nil, apperror.Internal(err)
	}
	if goal == nil || goal.PatientID != patientID {
		return nil, ErrHealthGoalNotFound
	}

	now := u.now()
	goal.UpdateProgress(req.CurrentValue, now)
	if err := u.goalRepo.Update(ctx, u.db, goal); err != nil {
		u.log.Warnf("Failed to update health goal %s: %+v", goal.ID, err)
		return nil, apperror.Internal(err)
	}
	return converter.HealthGoalToResponse(goal, now), nil
}
