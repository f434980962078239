package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/studyplan/internal/models"
	"github.com/abhisek/studyplan/internal/schedule"
	"github.com/abhisek/studyplan/internal/store"
)

func TestRecorder_LifecycleCounts(t *testing.T) {
	mem := store.NewMemory()
	rec := NewRecorder(mem.Analytics())
	rec.now = func() time.Time { return time.Date(2026, time.August, 3, 12, 0, 0, 0, time.Local) }
	ctx := context.Background()

	rec.SlotEvent(ctx, schedule.Event{
		Kind: schedule.EventConfirmed, OwnerID: "u1", Subject: "Physics", DurationMinutes: 60,
	})
	rec.SlotEvent(ctx, schedule.Event{
		Kind: schedule.EventCompleted, OwnerID: "u1", Subject: "Physics", DurationMinutes: 60,
	})
	rec.SlotEvent(ctx, schedule.Event{
		Kind: schedule.EventDeleted, OwnerID: "u1", Subject: "History", DurationMinutes: 90,
	})

	rollup, err := mem.Analytics().Latest(ctx, "u1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if rollup.ConfirmedSlots != 1 || rollup.CompletedSlots != 1 || rollup.DeletedSlots != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1",
			rollup.ConfirmedSlots, rollup.CompletedSlots, rollup.DeletedSlots)
	}
	if rollup.TotalStudyHours != 1 {
		t.Errorf("study hours = %f, want 1", rollup.TotalStudyHours)
	}
	physics := rollup.Subjects["Physics"]
	if physics.ConfirmedSlots != 1 || physics.CompletedSlots != 1 {
		t.Errorf("physics stats = %+v", physics)
	}
	if rollup.Subjects["History"].DeletedSlots != 1 {
		t.Errorf("history stats = %+v", rollup.Subjects["History"])
	}
}

func TestRecorder_RecordGenerated(t *testing.T) {
	mem := store.NewMemory()
	rec := NewRecorder(mem.Analytics())
	ctx := context.Background()

	rec.RecordGenerated(ctx, "u1", []models.StudySlot{
		{Title: "Study Physics: Review Today's Material"},
		{Title: "Study Physics: Practice Problems"},
		{Title: "Prepare for Math Exam"},
	})

	rollup, err := mem.Analytics().Latest(ctx, "u1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if rollup.TotalSlots != 3 {
		t.Errorf("total slots = %d, want 3", rollup.TotalSlots)
	}
	if rollup.Subjects["Physics"].TotalSlots != 2 {
		t.Errorf("physics total = %d, want 2", rollup.Subjects["Physics"].TotalSlots)
	}
	if rollup.Subjects["Math"].TotalSlots != 1 {
		t.Errorf("math total = %d, want 1", rollup.Subjects["Math"].TotalSlots)
	}
}

func TestWeeklySummary(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem.Tasks(), mem.Slots(), mem.Analytics(), NewInsightsGenerator(nil, 0))
	now := time.Date(2026, time.August, 5, 12, 0, 0, 0, time.Local) // Wednesday
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	for _, completed := range []bool{true, true, false, false} {
		task := models.Task{
			OwnerID: "u1", Title: "t", Subject: "Physics",
			DueDate: now.AddDate(0, 0, 3), Completed: completed,
		}
		if err := mem.Tasks().Insert(ctx, &task); err != nil {
			t.Fatalf("insert task: %v", err)
		}
	}

	slots := []models.StudySlot{
		{
			OwnerID: "u1", Title: "Study Physics: Practice Problems",
			StartTime: now.Add(-24 * time.Hour), EndTime: now.Add(-23 * time.Hour),
			DurationMinutes: 60, Completed: true, Confirmed: true,
		},
		{
			OwnerID: "u1", Title: "Study History: Review Today's Material",
			StartTime: now.Add(2 * time.Hour), EndTime: now.Add(3 * time.Hour),
			DurationMinutes: 60, Completed: false,
		},
	}
	if _, err := mem.Slots().InsertMany(ctx, slots); err != nil {
		t.Fatalf("insert slots: %v", err)
	}

	summary, err := svc.WeeklySummary(ctx, "u1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TaskCompletionRate != 50 {
		t.Errorf("completion rate = %f, want 50", summary.TaskCompletionRate)
	}
	if summary.TotalStudyHours != 1 {
		t.Errorf("study hours = %f, want 1", summary.TotalStudyHours)
	}
	if summary.SubjectHours["Physics"] != 1 {
		t.Errorf("physics hours = %f, want 1", summary.SubjectHours["Physics"])
	}

	source, insights, err := svc.Insights(ctx, "u1")
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	if source != models.SourceRuleBased {
		t.Errorf("source = %q, want rule-based", source)
	}
	if len(insights) == 0 {
		t.Error("expected insights")
	}
}
