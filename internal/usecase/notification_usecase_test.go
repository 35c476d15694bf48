package usecase_test

import (
	"testing"
	"time"

	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNotificationUsecase_ListAndMarkRead(t *testing.T) {
	f := newFixture()
	patient, _ := f.addPatient("alice")
	id := primitive.NewObjectID()
	f.notifier.Stored[patient.UserID] = []entity.Notification{
		{ID: id, UserID: patient.UserID.String(), Type: entity.NotificationDoctorRequest, Title: "New request", CreatedAt: time.Now()},
		{ID: primitive.NewObjectID(), UserID: patient.UserID.String(), Type: entity.NotificationAbnormalMetric, Read: true, CreatedAt: time.Now()},
	}
	uc := usecase.NewNotificationUsecase(f.log, f.notifier)

	unread, err := uc.ListMine(as(patient), true, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, unread.Notifications, 1)
	assert.Equal(t, id.Hex(), unread.Notifications[0].ID)

	require.NoError(t, uc.MarkRead(as(patient), id.Hex()))
	unread, err = uc.ListMine(as(patient), true, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, unread.Notifications)

	all, err := uc.ListMine(as(patient), false, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)
}

func TestNotificationUsecase_MarkReadUnknown(t *testing.T) {
	f := newFixture()
	patient, _ := f.addPatient("alice")
	other, _ := f.addPatient("bob")
	id := primitive.NewObjectID()
	f.notifier.Stored[other.UserID] = []entity.Notification{{ID: id, UserID: other.UserID.String()}}
	uc := usecase.NewNotificationUsecase(f.log, f.notifier)

	assert.ErrorIs(t, uc.MarkRead(as(patient), id.Hex()), usecase.ErrNotificationNotFound)
}
