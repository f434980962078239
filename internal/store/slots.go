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

type mongoSlotRepo struct {
	coll *mongo.Collection
}

func (r *mongoSlotRepo) InsertMany(ctx context.Context, slots []models.StudySlot) ([]models.StudySlot, error) {
	if len(slots) == 0 {
		return nil, nil
	}
	now := time.Now()
	docs := make([]interface{}, len(slots))
	for i := range slots {
		if slots[i].ID.IsZero() {
			slots[i].ID = primitive.NewObjectID()
		}
		slots[i].CreatedAt = now
		slots[i].UpdatedAt = now
		docs[i] = slots[i]
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("insert slots: %w", err)
	}
	return slots, nil
}

func (r *mongoSlotRepo) Insert(ctx context.Context, slot *models.StudySlot) error {
	if slot.ID.IsZero() {
		slot.ID = primitive.NewObjectID()
	}
	now := time.Now()
	slot.CreatedAt = now
	slot.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, slot); err != nil {
		return fmt.Errorf("insert slot: %w", err)
	}
	return nil
}

// DeleteUnconfirmedExcept removes every unconfirmed slot belonging to
// ownerID whose id is not in keep. Used when a regeneration replaces the
// previous suggestion set while preserving slots the user already acted on.
func (r *mongoSlotRepo) DeleteUnconfirmedExcept(ctx context.Context, ownerID string, keep []primitive.ObjectID) (int64, error) {
	filter := bson.M{
		"owner_id":  ownerID,
		"confirmed": false,
	}
	if len(keep) > 0 {
		filter["_id"] = bson.M{"$nin": keep}
	}
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("delete unconfirmed slots: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *mongoSlotRepo) FindByOwner(ctx context.Context, ownerID string, q SlotQuery) ([]models.StudySlot, error) {
	filter := bson.M{"owner_id": ownerID}
	if q.Confirmed != nil {
		filter["confirmed"] = *q.Confirmed
	}
	if q.Completed != nil {
		filter["completed"] = *q.Completed
	}
	if q.Origin != "" {
		filter["origin"] = q.Origin
	}
	timeRange := bson.M{}
	if !q.From.IsZero() {
		timeRange["$gte"] = q.From
	}
	if !q.To.IsZero() {
		timeRange["$lt"] = q.To
	}
	if len(timeRange) > 0 {
		filter["start_time"] = timeRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find slots: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.StudySlot
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode slots: %w", err)
	}
	return out, nil
}

func (r *mongoSlotRepo) FindByID(ctx context.Context, ownerID string, id primitive.ObjectID) (*models.StudySlot, error) {
	var slot models.StudySlot
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&slot)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find slot: %w", err)
	}
	return &slot, nil
}

func (r *mongoSlotRepo) UpdateByID(ctx context.Context, ownerID string, id primitive.ObjectID, patch SlotPatch) (*models.StudySlot, error) {
	set := bson.M{"updated_at": time.Now()}
	if patch.Confirmed != nil {
		set["confirmed"] = *patch.Confirmed
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var slot models.StudySlot
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "owner_id": ownerID},
		bson.M{"$set": set},
		opts,
	).Decode(&slot)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update slot: %w", err)
	}
	return &slot, nil
}

func (r *mongoSlotRepo) DeleteByID(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
