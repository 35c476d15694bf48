package repository

import (
	"context"
	"strings"
	"time"

	"healthtech-api/internal/domain/entity"
	domainRepo "healthtech-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return translateError(db.WithContext(ctx).Omit("Role").Create(user).Error)
}

func (r *userRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	return first[entity.User](db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))))
}

func (r *userRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return first[entity.User](db.WithContext(ctx).Preload("Role").Where("id = ?", id))
}

func (r *userRepository) UpdateFields(ctx context.Context, db *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	return translateError(db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(fields).Error)
}

func (r *userRepository) TouchLastLogin(ctx context.Context, db *gorm.DB, id uuid.UUID, at time.Time) error {
	return db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).UpdateColumn("last_login_at", at).Error
}

func (r *userRepository) List(ctx context.Context, db *gorm.DB, filter entity.UserFilter) ([]entity.User, int64, error) {
	query := db.WithContext(ctx).Model(&entity.User{})
	if filter.AccountStatus != "" {
		query = query.Where("account_status = ?", filter.AccountStatus)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", like, like)
	}
	return findPage[entity.User](ctx, query, "created_at DESC", filter.Limit, filter.Offset, "Role")
}
