package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abhisek/studyplan/internal/models"
)

type mongoPreferenceRepo struct {
	coll *mongo.Collection
}

func (r *mongoPreferenceRepo) GetByOwner(ctx context.Context, ownerID string) (*models.Preference, error) {
	var pref models.Preference
	err := r.coll.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&pref)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find preference: %w", err)
	}
	return &pref, nil
}

func (r *mongoPreferenceRepo) Upsert(ctx context.Context, pref *models.Preference) error {
	pref.UpdatedAt = time.Now()
	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"owner_id": pref.OwnerID},
		bson.M{
			"$set": bson.M{
				"study_preferences": pref.StudyPreferences,
				"daily_routine":     pref.DailyRoutine,
				"updated_at":        pref.UpdatedAt,
			},
			"$setOnInsert": bson.M{"created_at": pref.UpdatedAt},
		},
		opts,
	)
	if err != nil {
		return fmt.Errorf("upsert preference: %w", err)
	}
	return nil
}
