package service

import (
	"context"

	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditEntry describes one activity. OldValue/NewValue must be JSON encodable.
type AuditEntry struct {
	UserID    *uuid.UUID
	PatientID *uuid.UUID
	Action    string
	Entity    string
	EntityID  string
	OldValue  interface{}
	NewValue  interface{}
}

type AuditService interface {
	// Record writes the entry using tx so it commits with the change it describes.
	Record(ctx context.Context, tx *gorm.DB, entry AuditEntry) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Record(ctx context.Context, tx *gorm.DB, entry AuditEntry) error {
	auditLog := &entity.AuditLog{
		UserID:    entry.UserID,
		PatientID: entry.PatientID,
		Action:    entry.Action,
		Metadata: datatypes.JSONMap{
			"entity":    entry.Entity,
			"entity_id": entry.EntityID,
			"old_value": entry.OldValue,
			"new_value": entry.NewValue,
		},
	}

	if err := s.auditRepo.Create(ctx, tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
