package usecase

import (
	"context"
	"errors"

	"healthtech-api/internal/converter"
	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/delivery/http/middleware"
	"healthtech-api/internal/service"
	"healthtech-api/pkg/apperror"

	"github.com/sirupsen/logrus"
)

type NotificationUsecase interface {
	ListMine(ctx context.Context, unreadOnly bool, page dto.PageRequest) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, notificationID string) error
}

type notificationUsecase struct {
	log      *logrus.Logger
	notifier service.NotificationService
}

func NewNotificationUsecase(log *logrus.Logger, notifier service.NotificationService) NotificationUsecase {
	return &notificationUsecase{log: log, notifier: notifier}
}

func (u *notificationUsecase) ListMine(ctx context.Context, unreadOnly bool, page dto.PageRequest) (*dto.NotificationListResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}

	page = page.Normalize()
	notifications, total, err := u.notifier.ListForUser(ctx, actor.UserID, unreadOnly, page.Limit, page.Offset())
	if err != nil {
		u.log.Warnf("Failed to list notifications of %s: %+v", actor.UserID, err)
		return nil, apperror.Internal(err)
	}

	return &dto.NotificationListResponse{
		Notifications: converter.NotificationsToResponses(notifications),
		Total:         total,
	}, nil
}

func (u *notificationUsecase) MarkRead(ctx context.Context, notificationID string) error {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return err
	}

	if err := u.notifier.MarkRead(ctx, actor.UserID, notificationID); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		u.log.Warnf("Failed to mark notification %s read: %+v", notificationID, err)
		return apperror.Internal(err)
	}
	return nil
}
