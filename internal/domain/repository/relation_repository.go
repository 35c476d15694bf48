package repository

import (
	"context"

	"healthtech-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RelationFilter selects relations by party and status. Nil fields are ignored.
type RelationFilter struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
	Status    entity.RelationStatus
}

type RelationRepository interface {
	Create(ctx context.Context, db *gorm.DB, relation *entity.DoctorPatientRelation) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.DoctorPatientRelation, error)
	FindActive(ctx context.Context, db *gorm.DB, doctorID, patientID uuid.UUID) (*entity.DoctorPatientRelation, error)
	// UpdateStatus writes status and dates only if the stored status still
	// equals from. It returns the number of rows changed.
	UpdateStatus(ctx context.Context, db *gorm.DB, relation *entity.DoctorPatientRelation, from entity.RelationStatus) (int64, error)
	UpdatePermissions(ctx context.Context, db *gorm.DB, relation *entity.DoctorPatientRelation) error
	List(ctx context.Context, db *gorm.DB, filter RelationFilter) ([]entity.DoctorPatientRelation, error)
}
