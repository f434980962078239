package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/studyplan/internal/models"
	"github.com/abhisek/studyplan/internal/store"
)

// Summary is the weekly analytics view returned to clients.
type Summary struct {
	WeekStart          time.Time          `json:"weekStart"`
	WeekEnd            time.Time          `json:"weekEnd"`
	TaskCompletionRate float64            `json:"taskCompletionRate"`
	TotalStudyHours    float64            `json:"totalStudyHours"`
	SubjectHours       map[string]float64 `json:"subjectHours"`
	Rollup             *models.Analytics  `json:"rollup,omitempty"`
}

// Service computes analytics summaries and insights from stored data.
type Service struct {
	tasks     store.TaskRepo
	slots     store.SlotRepo
	analytics store.AnalyticsRepo
	insights  *InsightsGenerator

	now func() time.Time
}

func NewService(tasks store.TaskRepo, slots store.SlotRepo, analytics store.AnalyticsRepo, insights *InsightsGenerator) *Service {
	return &Service{
		tasks:     tasks,
		slots:     slots,
		analytics: analytics,
		insights:  insights,
		now:       time.Now,
	}
}

// WeeklySummary computes the current week's stats: completion rate across
// all tasks, study hours from completed slots, and per-subject hours. The
// lifetime rollup maintained by the Recorder rides along when present.
func (s *Service) WeeklySummary(ctx context.Context, ownerID string) (*Summary, error) {
	weekStart, weekEnd := weekBounds(s.now())

	tasks, err := s.tasks.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	slots, err := s.slots.FindByOwner(ctx, ownerID, store.SlotQuery{From: weekStart, To: weekEnd})
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	summary := &Summary{
		WeekStart:    weekStart,
		WeekEnd:      weekEnd,
		SubjectHours: make(map[string]float64),
	}

	if len(tasks) > 0 {
		completed := 0
		for _, t := range tasks {
			if t.Completed {
				completed++
			}
		}
		summary.TaskCompletionRate = float64(completed) / float64(len(tasks)) * 100
	}

	for _, slot := range slots {
		if !slot.Completed {
			continue
		}
		hours := float64(slot.DurationMinutes) / 60
		summary.TotalStudyHours += hours
		if subject := slot.Subject(); subject != "" {
			summary.SubjectHours[subject] += hours
		}
	}

	rollup, err := s.analytics.Latest(ctx, ownerID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("load rollup: %w", err)
	}
	summary.Rollup = rollup
	return summary, nil
}

// History returns past rollups, newest first. The limit is clamped to a
// year of weekly snapshots.
func (s *Service) History(ctx context.Context, ownerID string, limit int) ([]models.Analytics, error) {
	if limit <= 0 || limit > 52 {
		limit = 12
	}
	return s.analytics.History(ctx, ownerID, limit)
}

// Insights generates insights for the current week's stats.
func (s *Service) Insights(ctx context.Context, ownerID string) (string, []Insight, error) {
	summary, err := s.WeeklySummary(ctx, ownerID)
	if err != nil {
		return "", nil, err
	}
	source, insights := s.insights.Generate(ctx, Stats{
		TaskCompletionRate: summary.TaskCompletionRate,
		TotalStudyHours:    summary.TotalStudyHours,
		SubjectHours:       summary.SubjectHours,
	})
	return source, insights, nil
}

// weekBounds returns the Sunday-to-Saturday week containing t.
func weekBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	start = start.AddDate(0, 0, -int(t.Weekday()))
	return start, start.AddDate(0, 0, 7)
}
