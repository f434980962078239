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

type mongoExamRepo struct {
	coll *mongo.Collection
}

func (r *mongoExamRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Exam, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find exams: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Exam
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode exams: %w", err)
	}
	return out, nil
}

func (r *mongoExamRepo) UpdateByID(ctx context.Context, ownerID string, id primitive.ObjectID, exam *models.Exam) error {
	exam.UpdatedAt = time.Now()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "owner_id": ownerID},
		bson.M{"$set": bson.M{
			"subject":    exam.Subject,
			"date":       exam.Date,
			"start_time": exam.StartTime,
			"end_time":   exam.EndTime,
			"duration":   exam.Duration,
			"location":   exam.Location,
			"updated_at": exam.UpdatedAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("update exam: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoExamRepo) Insert(ctx context.Context, exam *models.Exam) error {
	if exam.ID.IsZero() {
		exam.ID = primitive.NewObjectID()
	}
	now := time.Now()
	exam.CreatedAt = now
	exam.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, exam); err != nil {
		return fmt.Errorf("insert exam: %w", err)
	}
	return nil
}

func (r *mongoExamRepo) DeleteByID(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete exam: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
