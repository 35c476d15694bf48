package usecase

import (
	"context"

	"healthtech-api/internal/converter"
	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/domain/repository"
	"healthtech-api/pkg/apperror"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditLogUsecase interface {
	ListActivityLogs(ctx context.Context, query *dto.ActivityLogQuery) (*dto.ActivityLogListResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) ListActivityLogs(ctx context.Context, query *dto.ActivityLogQuery) (*dto.ActivityLogListResponse, error) {
	page := query.PageRequest.Normalize()
	logs, total, err := u.auditLogRepo.List(ctx, u.db, entity.AuditLogFilter{
		UserID:    query.UserID,
		PatientID: query.PatientID,
		Action:    query.Action,
		Limit:     page.Limit,
		Offset:    page.Offset(),
	})
	if err != nil {
		u.log.Warnf("Failed to list activity logs: %+v", err)
		return nil, apperror.Internal(err)
	}

	return &dto.ActivityLogListResponse{
		Logs:  converter.ActivityLogsToResponses(logs),
		Total: total,
	}, nil
}
