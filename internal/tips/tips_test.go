package tips

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/studyplan/internal/llm"
	"github.com/abhisek/studyplan/internal/models"
)

func TestGenerate_PrimarySuccess(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Text: `Here you go: {"tips":[{"title":"Teach It Back","content":"Explain the material to someone else.","category":"study technique"}]}`,
	})
	gen := NewGenerator(mock, time.Second)

	res := gen.Generate(context.Background(), Input{Limit: 5})
	if res.Source != "mock" {
		t.Fatalf("source = %q, want mock", res.Source)
	}
	if len(res.Tips) != 1 {
		t.Fatalf("expected 1 tip, got %d", len(res.Tips))
	}
	if res.Tips[0].Title != "Teach It Back" {
		t.Errorf("unexpected title %q", res.Tips[0].Title)
	}
	if res.Tips[0].Source != "mock" {
		t.Errorf("tip source = %q, want mock", res.Tips[0].Source)
	}
}

func TestGenerate_ProviderErrorFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	gen := NewGenerator(mock, time.Second)

	res := gen.Generate(context.Background(), Input{Limit: 5})
	if res.Source != models.SourceRuleBased {
		t.Fatalf("source = %q, want rule-based", res.Source)
	}
	if len(res.Tips) != 5 {
		t.Fatalf("expected 5 fallback tips, got %d", len(res.Tips))
	}
	if res.Tips[0].Title != "Use the Pomodoro Technique" {
		t.Errorf("unexpected first fallback tip %q", res.Tips[0].Title)
	}
}

func TestGenerate_ProseOnlyFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "I have no tips today."})
	gen := NewGenerator(mock, time.Second)

	res := gen.Generate(context.Background(), Input{Limit: 3})
	if res.Source != models.SourceRuleBased {
		t.Fatalf("source = %q, want rule-based", res.Source)
	}
	if len(res.Tips) != 3 {
		t.Errorf("expected limit respected, got %d tips", len(res.Tips))
	}
}

func TestFallbackTips_SubjectSpecific(t *testing.T) {
	tasks := []models.Task{{Title: "Problem set 4", Subject: "Physics"}}

	tips := FallbackTips(Input{Tasks: tasks, Limit: 5})
	if len(tips) != 5 {
		t.Fatalf("expected 5 tips, got %d", len(tips))
	}
	last := tips[len(tips)-1]
	if last.Title != "Focus on Physics Fundamentals" {
		t.Errorf("expected subject-specific tip last, got %q", last.Title)
	}
	if last.Category != "subject specific" {
		t.Errorf("category = %q", last.Category)
	}
}

func TestFallbackTips_MathGetsPracticeTip(t *testing.T) {
	tasks := []models.Task{{Title: "Integrals", Subject: "Math"}}

	tips := FallbackTips(Input{Tasks: tasks, Limit: 6})
	last := tips[len(tips)-1]
	if last.Title != "Practice Math Problems Regularly" {
		t.Errorf("expected math practice tip, got %q", last.Title)
	}
}
