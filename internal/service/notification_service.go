package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/infrastructure/document"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notice is a notification addressed to one user.
type Notice struct {
	UserID  uuid.UUID
	Type    string
	Title   string
	Message string
	Data    map[string]interface{}
}

type NotificationService interface {
	Send(ctx context.Context, notice Notice) error
	// SendMany delivers notices concurrently and returns the first error.
	SendMany(ctx context.Context, notices []Notice) error
	ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]entity.Notification, int64, error)
	MarkRead(ctx context.Context, userID uuid.UUID, id string) error
}

type mongoNotificationService struct {
	coll *mongo.Collection
	log  *logrus.Logger
	now  func() time.Time
}

func NewMongoNotificationService(db *mongo.Database, log *logrus.Logger) NotificationService {
	return &mongoNotificationService{
		coll: db.Collection(document.NotificationsCollection),
		log:  log,
		now:  time.Now,
	}
}

func (s *mongoNotificationService) Send(ctx context.Context, notice Notice) error {
	doc := entity.Notification{
		UserID:    notice.UserID.String(),
		Type:      notice.Type,
		Title:     notice.Title,
		Message:   notice.Message,
		Data:      notice.Data,
		CreatedAt: s.now().UTC(),
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		s.log.Warnf("Failed to store %s notification for user %s: %+v", notice.Type, notice.UserID, err)
		return err
	}
	return nil
}

func (s *mongoNotificationService) SendMany(ctx context.Context, notices []Notice) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, n := range notices {
		n := n
		g.Go(func() error {
			return s.Send(gctx, n)
		})
	}
	return g.Wait()
}

func (s *mongoNotificationService) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]entity.Notification, int64, error) {
	filter := bson.M{"user_id": userID.String()}
	if unreadOnly {
		filter["read"] = false
	}

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	notifications := make([]entity.Notification, 0)
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (s *mongoNotificationService) MarkRead(ctx context.Context, userID uuid.UUID, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotificationNotFound
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": objectID, "user_id": userID.String()},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
