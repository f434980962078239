package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abhisek/studyplan/internal/models"
)

type mongoTaskRepo struct {
	coll *mongo.Collection
}

func (r *mongoTaskRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID})
}

func (r *mongoTaskRepo) ListPendingByOwner(ctx context.Context, ownerID string) ([]models.Task, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID, "completed": bson.M{"$ne": true}})
}

func (r *mongoTaskRepo) find(ctx context.Context, filter bson.M) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Task
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return out, nil
}

func (r *mongoTaskRepo) FindByID(ctx context.Context, ownerID string, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

func (r *mongoTaskRepo) Insert(ctx context.Context, task *models.Task) error {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, task); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *mongoTaskRepo) UpdateByID(ctx context.Context, ownerID string, id primitive.ObjectID, task *models.Task) error {
	task.UpdatedAt = time.Now()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "owner_id": ownerID},
		bson.M{"$set": bson.M{
			"title":            task.Title,
			"subject":          task.Subject,
			"description":      task.Description,
			"due_date":         task.DueDate,
			"priority":         task.Priority,
			"duration_minutes": task.DurationMinutes,
			"completed":        task.Completed,
			"updated_at":       task.UpdatedAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoTaskRepo) DeleteByID(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
