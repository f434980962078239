package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abhisek/studyplan/internal/models"
)

type mongoAnalyticsRepo struct {
	coll *mongo.Collection
}

func (r *mongoAnalyticsRepo) Latest(ctx context.Context, ownerID string) (*models.Analytics, error) {
	// _id breaks generated_at ties toward the most recently inserted doc.
	opts := options.FindOne().SetSort(bson.D{{Key: "generated_at", Value: -1}, {Key: "_id", Value: -1}})
	var a models.Analytics
	err := r.coll.FindOne(ctx, bson.M{"owner_id": ownerID}, opts).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find analytics: %w", err)
	}
	return &a, nil
}

func (r *mongoAnalyticsRepo) History(ctx context.Context, ownerID string, limit int) ([]models.Analytics, error) {
	opts := options.Find().SetSort(bson.D{{Key: "generated_at", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find analytics history: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Analytics
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode analytics history: %w", err)
	}
	return out, nil
}

func (r *mongoAnalyticsRepo) Save(ctx context.Context, a *models.Analytics) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("save analytics: %w", err)
	}
	return nil
}
