package repository

import (
	"context"
	"time"

	"healthtech-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error)
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error)
	UpdateFields(ctx context.Context, db *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
	TouchLastLogin(ctx context.Context, db *gorm.DB, id uuid.UUID, at time.Time) error
	List(ctx context.Context, db *gorm.DB, filter entity.UserFilter) ([]entity.User, int64, error)
}
