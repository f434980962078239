package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/abhisek/studyplan/internal/llm"
)

// LLMEventRepo persists completion call events. It satisfies
// llm.EventRecorder.
type LLMEventRepo struct {
	coll *mongo.Collection
}

type llmEventDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Provider     string             `bson:"provider"`
	Model        string             `bson:"model,omitempty"`
	Purpose      string             `bson:"purpose"`
	PromptChars  int                `bson:"prompt_chars"`
	InputTokens  int                `bson:"input_tokens,omitempty"`
	OutputTokens int                `bson:"output_tokens,omitempty"`
	LatencyMs    int64              `bson:"latency_ms"`
	Success      bool               `bson:"success"`
	ErrorMessage string             `bson:"error_message,omitempty"`
	At           time.Time          `bson:"at"`
}

func (r *LLMEventRepo) RecordLLMRequest(ctx context.Context, ev llm.RequestEvent) error {
	doc := llmEventDoc{
		ID:           primitive.NewObjectID(),
		Provider:     ev.Provider,
		Model:        ev.Model,
		Purpose:      ev.Purpose,
		PromptChars:  ev.PromptChars,
		InputTokens:  ev.InputTokens,
		OutputTokens: ev.OutputTokens,
		LatencyMs:    ev.LatencyMs,
		Success:      ev.Success,
		ErrorMessage: ev.ErrorMessage,
		At:           ev.At,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("record llm event: %w", err)
	}
	return nil
}
