package repository

import (
	"context"

	"healthtech-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error)
	List(ctx context.Context, db *gorm.DB, filter entity.DoctorFilter) ([]entity.Doctor, int64, error)
	// UpdateDecision persists an approval decision only while the row is
	// still pending. It returns the number of rows changed.
	UpdateDecision(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) (int64, error)
	// UpdateProfile writes the self-editable profile columns.
	UpdateProfile(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
}
