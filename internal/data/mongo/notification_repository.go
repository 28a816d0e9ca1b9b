// Package mongo provides the MongoDB implementation of the notification feed
// repository used by the remote storage backend. The feed is append-heavy
// with occasional bulk updates, which suits a document collection better than
// a relational table.
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wallet-topup-ledger/internal/domain/notification"
)

const (
	// NotificationCollectionName is the name of the notification collection in MongoDB
	NotificationCollectionName = "notifications"
)

// NotificationRepository implements the notification.Repository interface for MongoDB
type NotificationRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewNotificationRepository creates a new MongoDB notification repository
func NewNotificationRepository(logger *slog.Logger, db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		db:     db,
		logger: logger,
	}
}

// Insert appends a notification to the feed.
func (r *NotificationRepository) Insert(ctx context.Context, n *notification.Notification) error {
	collection := r.db.Collection(NotificationCollectionName)

	_, err := collection.InsertOne(ctx, n)
	if err != nil {
		r.logger.Error("Failed to insert notification",
			"id", n.ID,
			"personal_identifier", n.PersonalIdentifier,
			"error", err)
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}

// ListByPersonalID retrieves an identifier's notifications, newest first.
func (r *NotificationRepository) ListByPersonalID(ctx context.Context, personalIdentifier string) ([]*notification.Notification, error) {
	collection := r.db.Collection(NotificationCollectionName)

	filter := bson.M{"personal_identifier": personalIdentifier}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list notifications",
			"personal_identifier", personalIdentifier,
			"error", err)
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []*notification.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		r.logger.Error("Failed to decode notifications",
			"personal_identifier", personalIdentifier,
			"error", err)
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}

	return notifications, nil
}

// MarkAllRead marks every notification of the identifier as read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, personalIdentifier string) (int64, error) {
	collection := r.db.Collection(NotificationCollectionName)

	filter := bson.M{"personal_identifier": personalIdentifier, "read": false}
	update := bson.M{"$set": bson.M{"read": true}}

	result, err := collection.UpdateMany(ctx, filter, update)
	if err != nil {
		r.logger.Error("Failed to mark notifications read",
			"personal_identifier", personalIdentifier,
			"error", err)
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}

	return result.ModifiedCount, nil
}

// Clear deletes every notification of the identifier.
func (r *NotificationRepository) Clear(ctx context.Context, personalIdentifier string) (int64, error) {
	collection := r.db.Collection(NotificationCollectionName)

	result, err := collection.DeleteMany(ctx, bson.M{"personal_identifier": personalIdentifier})
	if err != nil {
		r.logger.Error("Failed to clear notifications",
			"personal_identifier", personalIdentifier,
			"error", err)
		return 0, fmt.Errorf("failed to clear notifications: %w", err)
	}

	return result.DeletedCount, nil
}

// DeleteReadBefore removes up to limit read notifications older than the
// cutoff. Mongo's DeleteMany has no limit option, so ids are collected first;
// the sweep runs repeatedly anyway, so the bound only smooths load.
func (r *NotificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	collection := r.db.Collection(NotificationCollectionName)

	filter := bson.M{"read": true, "created_at": bson.M{"$lt": cutoff}}
	opts := options.Find().
		SetLimit(int64(limit)).
		SetProjection(bson.M{"_id": 1})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to find expired notifications", "error", err)
		return 0, fmt.Errorf("failed to find expired notifications: %w", err)
	}

	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return 0, fmt.Errorf("failed to decode expired notifications: %w", err)
	}

	if len(docs) == 0 {
		return 0, nil
	}

	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}

	result, err := collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		r.logger.Error("Failed to delete expired notifications", "error", err)
		return 0, fmt.Errorf("failed to delete expired notifications: %w", err)
	}

	return result.DeletedCount, nil
}
