package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/studyplan/internal/llm"
	"github.com/abhisek/studyplan/internal/models"
)

// Insight is one observation about a student's study behavior.
type Insight struct {
	Text string `json:"text"`
	// Category is one of: achievement, improvement, suggestion, warning.
	Category string `json:"category"`
	Source   string `json:"source"`
}

// Stats is the aggregate input insights are derived from.
type Stats struct {
	// TaskCompletionRate is a percentage, 0-100.
	TaskCompletionRate float64
	TotalStudyHours    float64
	SubjectHours       map[string]float64
}

// InsightsGenerator produces insights with the two-tier strategy:
// completion provider first, threshold-based rules when it fails.
type InsightsGenerator struct {
	provider llm.Provider
	timeout  time.Duration
}

// NewInsightsGenerator wires the generator. provider may be nil.
func NewInsightsGenerator(provider llm.Provider, timeout time.Duration) *InsightsGenerator {
	return &InsightsGenerator{provider: provider, timeout: timeout}
}

const insightsSystemPrompt = `You are an academic planner assistant generating insights from a student's analytics.

Respond with a JSON object only: {"insights": [...]}. Each insight has "text" and "category" (one of: achievement, improvement, suggestion, warning). Generate 3-5 insights.`

// Generate returns insights for the given stats plus the source that
// produced them. Never fails.
func (g *InsightsGenerator) Generate(ctx context.Context, stats Stats) (string, []Insight) {
	if g.provider != nil {
		if insights, ok := g.tryPrimary(ctx, stats); ok {
			return g.provider.Name(), insights
		}
	}
	return models.SourceRuleBased, FallbackInsights(stats)
}

func (g *InsightsGenerator) tryPrimary(ctx context.Context, stats Stats) ([]Insight, bool) {
	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.provider.Complete(callCtx, llm.Request{
		System:      insightsSystemPrompt,
		Prompt:      buildInsightsPrompt(stats),
		MaxTokens:   1024,
		Temperature: 0.7,
	})
	if err != nil {
		log.Printf("analytics: insights provider failed, using fallback: %v", err)
		return nil, false
	}

	insights, err := parseInsights(resp.Text)
	if err != nil {
		log.Printf("analytics: unusable insights response, using fallback: %v", err)
		return nil, false
	}
	for i := range insights {
		insights[i].Source = g.provider.Name()
	}
	return insights, true
}

func buildInsightsPrompt(stats Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task completion rate: %.0f%%\n", stats.TaskCompletionRate)
	fmt.Fprintf(&b, "Total study hours this week: %.1f\n", stats.TotalStudyHours)
	b.WriteString("Hours per subject:\n")
	if len(stats.SubjectHours) == 0 {
		b.WriteString("None\n")
	}
	for _, subject := range sortedSubjects(stats.SubjectHours) {
		fmt.Fprintf(&b, "- %s: %.1f\n", subject, stats.SubjectHours[subject])
	}
	return b.String()
}

func parseInsights(text string) ([]Insight, error) {
	text = strings.TrimSpace(text)
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}
	var envelope struct {
		Insights []Insight `json:"insights"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &envelope); err != nil {
		return nil, fmt.Errorf("parse insights: %w", err)
	}
	if len(envelope.Insights) == 0 {
		return nil, fmt.Errorf("response contained zero insights")
	}
	return envelope.Insights, nil
}

// FallbackInsights derives insights from fixed thresholds: completion rate
// bands at 80 and 50 percent, study-hour bands at 20 and 10 hours, and a
// balance check when one subject gets over three times another's hours.
func FallbackInsights(stats Stats) []Insight {
	var insights []Insight

	rate := stats.TaskCompletionRate
	switch {
	case rate >= 80:
		insights = append(insights, Insight{
			Text:     fmt.Sprintf("Great job maintaining a high task completion rate of %.0f%%! Keep up the good work.", rate),
			Category: "achievement",
			Source:   models.SourceRuleBased,
		})
	case rate >= 50:
		insights = append(insights, Insight{
			Text:     fmt.Sprintf("Your task completion rate is %.0f%%. Try breaking down larger tasks into smaller, more manageable steps to improve this rate.", rate),
			Category: "improvement",
			Source:   models.SourceRuleBased,
		})
	default:
		insights = append(insights, Insight{
			Text:     fmt.Sprintf("Your task completion rate is %.0f%%, which is lower than ideal. Consider setting more realistic goals and using time management techniques.", rate),
			Category: "warning",
			Source:   models.SourceRuleBased,
		})
	}

	hours := stats.TotalStudyHours
	switch {
	case hours >= 20:
		insights = append(insights, Insight{
			Text:     fmt.Sprintf("You've studied for %.1f hours this week, which shows great dedication. Make sure to also include adequate rest time.", hours),
			Category: "achievement",
			Source:   models.SourceRuleBased,
		})
	case hours >= 10:
		insights = append(insights, Insight{
			Text:     fmt.Sprintf("You've studied for %.1f hours this week. Consider increasing this slightly for better retention and coverage of material.", hours),
			Category: "suggestion",
			Source:   models.SourceRuleBased,
		})
	default:
		insights = append(insights, Insight{
			Text:     fmt.Sprintf("You've studied for %.1f hours this week, which may not be sufficient. Try to allocate more time for studying to improve your understanding and performance.", hours),
			Category: "warning",
			Source:   models.SourceRuleBased,
		})
	}

	if len(stats.SubjectHours) >= 2 {
		subjects := sortedSubjects(stats.SubjectHours)
		sort.Slice(subjects, func(i, j int) bool {
			return stats.SubjectHours[subjects[i]] > stats.SubjectHours[subjects[j]]
		})
		most, least := subjects[0], subjects[len(subjects)-1]
		if stats.SubjectHours[most] > 3*stats.SubjectHours[least] {
			insights = append(insights, Insight{
				Text: fmt.Sprintf("You're spending significantly more time on %s (%.1f hours) compared to %s (%.1f hours). Consider balancing your study time more evenly.",
					most, stats.SubjectHours[most], least, stats.SubjectHours[least]),
				Category: "suggestion",
				Source:   models.SourceRuleBased,
			})
		}
	}

	if len(insights) < 3 {
		insights = append(insights, Insight{
			Text:     "Try to maintain a consistent study schedule to improve retention and reduce stress before deadlines.",
			Category: "suggestion",
			Source:   models.SourceRuleBased,
		})
	}
	return insights
}

func sortedSubjects(hours map[string]float64) []string {
	subjects := make([]string, 0, len(hours))
	for s := range hours {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	return subjects
}
