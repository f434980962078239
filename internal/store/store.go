package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store holds the MongoDB client and hands out repositories.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to MongoDB at uri and verifies the connection with a ping.
func Open(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	return &Store{client: client, db: client.Database(dbName)}, nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Tasks() TaskRepo             { return &mongoTaskRepo{coll: s.db.Collection("tasks")} }
func (s *Store) Classes() ClassRepo          { return &mongoClassRepo{coll: s.db.Collection("classes")} }
func (s *Store) Exams() ExamRepo             { return &mongoExamRepo{coll: s.db.Collection("exams")} }
func (s *Store) Slots() SlotRepo             { return &mongoSlotRepo{coll: s.db.Collection("study_slots")} }
func (s *Store) Preferences() PreferenceRepo { return &mongoPreferenceRepo{coll: s.db.Collection("preferences")} }
func (s *Store) Users() UserRepo             { return &mongoUserRepo{coll: s.db.Collection("users")} }
func (s *Store) Analytics() AnalyticsRepo    { return &mongoAnalyticsRepo{coll: s.db.Collection("analytics")} }
func (s *Store) LLMEvents() *LLMEventRepo    { return &LLMEventRepo{coll: s.db.Collection("llm_events")} }
