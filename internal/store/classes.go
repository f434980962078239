package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abhisek/studyplan/internal/models"
)

type mongoClassRepo struct {
	coll *mongo.Collection
}

func (r *mongoClassRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Class, error) {
	opts := options.Find().SetSort(bson.D{{Key: "day_of_week", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find classes: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Class
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode classes: %w", err)
	}
	return out, nil
}

func (r *mongoClassRepo) Insert(ctx context.Context, class *models.Class) error {
	if class.ID.IsZero() {
		class.ID = primitive.NewObjectID()
	}
	now := time.Now()
	class.CreatedAt = now
	class.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, class); err != nil {
		return fmt.Errorf("insert class: %w", err)
	}
	return nil
}

func (r *mongoClassRepo) UpdateByID(ctx context.Context, ownerID string, id primitive.ObjectID, class *models.Class) error {
	class.UpdatedAt = time.Now()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "owner_id": ownerID},
		bson.M{"$set": bson.M{
			"subject":       class.Subject,
			"day_of_week":   class.DayOfWeek,
			"start_time":    class.StartTime,
			"end_time":      class.EndTime,
			"repeat_weekly": class.RepeatWeekly,
			"location":      class.Location,
			"updated_at":    class.UpdatedAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("update class: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoClassRepo) DeleteByID(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
