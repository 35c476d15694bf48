package repository

import (
	"context"
	"errors"

	domainRepo "healthtech-api/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// translateError maps PostgreSQL unique violations to DuplicateKeyError so
// usecases never import the driver.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &domainRepo.DuplicateKeyError{Constraint: pgErr.ConstraintName}
	}
	return err
}

// findPage runs the page query and the total count concurrently over the same
// filtered query.
func findPage[T any](ctx context.Context, query *gorm.DB, order string, limit, offset int, preloads ...string) ([]T, int64, error) {
	var (
		items []T
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return query.Session(&gorm.Session{}).WithContext(gctx).Count(&total).Error
	})
	g.Go(func() error {
		q := query.Session(&gorm.Session{}).WithContext(gctx)
		for _, p := range preloads {
			q = q.Preload(p)
		}
		if limit > 0 {
			q = q.Limit(limit).Offset(offset)
		}
		return q.Order(order).Find(&items).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// first loads one row, returning (nil, nil) when nothing matches.
func first[T any](query *gorm.DB) (*T, error) {
	var item T
	if err := query.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

type transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) domainRepo.Transactor {
	return &transactor{db: db}
}

func (t *transactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return t.db.WithContext(ctx).Transaction(fn)
}
