package analytics

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/studyplan/internal/llm"
	"github.com/abhisek/studyplan/internal/models"
)

func TestFallbackInsights_Thresholds(t *testing.T) {
	tests := []struct {
		name       string
		stats      Stats
		categories []string
	}{
		{
			"strong week",
			Stats{TaskCompletionRate: 90, TotalStudyHours: 25},
			[]string{"achievement", "achievement", "suggestion"},
		},
		{
			"middling week",
			Stats{TaskCompletionRate: 60, TotalStudyHours: 12},
			[]string{"improvement", "suggestion", "suggestion"},
		},
		{
			"weak week",
			Stats{TaskCompletionRate: 20, TotalStudyHours: 2},
			[]string{"warning", "warning", "suggestion"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insights := FallbackInsights(tt.stats)
			if len(insights) != len(tt.categories) {
				t.Fatalf("got %d insights, want %d: %+v", len(insights), len(tt.categories), insights)
			}
			for i, want := range tt.categories {
				if insights[i].Category != want {
					t.Errorf("insight %d category = %q, want %q", i, insights[i].Category, want)
				}
				if insights[i].Source != models.SourceRuleBased {
					t.Errorf("insight %d source = %q", i, insights[i].Source)
				}
			}
		})
	}
}

func TestFallbackInsights_SubjectImbalance(t *testing.T) {
	stats := Stats{
		TaskCompletionRate: 90,
		TotalStudyHours:    25,
		SubjectHours:       map[string]float64{"Physics": 20, "History": 2},
	}
	insights := FallbackInsights(stats)

	var found bool
	for _, in := range insights {
		if strings.Contains(in.Text, "Physics") && strings.Contains(in.Text, "History") {
			found = true
			if in.Category != "suggestion" {
				t.Errorf("balance insight category = %q", in.Category)
			}
		}
	}
	if !found {
		t.Error("expected a subject balance insight")
	}
}

func TestFallbackInsights_BalancedSubjectsNoNag(t *testing.T) {
	stats := Stats{
		TaskCompletionRate: 90,
		TotalStudyHours:    25,
		SubjectHours:       map[string]float64{"Physics": 10, "History": 8},
	}
	for _, in := range FallbackInsights(stats) {
		if strings.Contains(in.Text, "balancing") {
			t.Errorf("unexpected balance insight: %q", in.Text)
		}
	}
}

func TestInsightsGenerate_PrimarySuccess(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Text: `{"insights":[{"text":"Solid Physics streak this week.","category":"achievement"}]}`,
	})
	gen := NewInsightsGenerator(mock, time.Second)

	source, insights := gen.Generate(context.Background(), Stats{TaskCompletionRate: 80})
	if source != "mock" {
		t.Fatalf("source = %q, want mock", source)
	}
	if len(insights) != 1 || insights[0].Category != "achievement" {
		t.Fatalf("unexpected insights %+v", insights)
	}
	if insights[0].Source != "mock" {
		t.Errorf("insight source = %q", insights[0].Source)
	}
}

func TestInsightsGenerate_FallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "no JSON here"})
	gen := NewInsightsGenerator(mock, time.Second)

	source, insights := gen.Generate(context.Background(), Stats{TaskCompletionRate: 90, TotalStudyHours: 25})
	if source != models.SourceRuleBased {
		t.Fatalf("source = %q, want rule-based", source)
	}
	if len(insights) == 0 {
		t.Error("expected fallback insights")
	}
}
