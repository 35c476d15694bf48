package repository

import (
	"context"

	"healthtech-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmergencyContactRepository interface {
	Create(ctx context.Context, db *gorm.DB, contact *entity.EmergencyContact) error
	// ListByPatient returns the primary contact first, then oldest first.
	ListByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.EmergencyContact, error)
	// ClearPrimary unsets the primary flag on every contact of the patient.
	ClearPrimary(ctx context.Context, db *gorm.DB, patientID uuid.UUID) error
	// Delete removes a contact owned by the patient and returns the rows removed.
	Delete(ctx context.Context, db *gorm.DB, patientID, id uuid.UUID) (int64, error)
}
