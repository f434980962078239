package schedule

import (
	"testing"
	"time"

	"github.com/abhisek/studyplan/internal/models"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		in   ScoreInput
		want int
	}{
		{"due tomorrow", ScoreInput{DaysUntilDue: 1}, 5},
		{"due today", ScoreInput{DaysUntilDue: 0}, 5},
		{"due in three days", ScoreInput{DaysUntilDue: 3}, 4},
		{"due in five days", ScoreInput{DaysUntilDue: 5}, 3},
		{"due in a week", ScoreInput{DaysUntilDue: 7}, 2},
		{"distant low stakes", ScoreInput{DaysUntilDue: 30}, 2},
		{"exam tomorrow clamps at five", ScoreInput{DaysUntilDue: 1, ExamLike: true}, 5},
		{"distant exam", ScoreInput{DaysUntilDue: 10, ExamLike: true}, 3},
		{"complex task due soon", ScoreInput{DaysUntilDue: 3, Complexity: 4}, 5},
		{"complex distant task", ScoreInput{DaysUntilDue: 9, Complexity: 5}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.in); got != tt.want {
				t.Errorf("Score(%+v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestScore_Bounds(t *testing.T) {
	for days := 0; days <= 30; days++ {
		for _, examLike := range []bool{false, true} {
			for complexity := 0; complexity <= 5; complexity++ {
				got := Score(ScoreInput{DaysUntilDue: days, ExamLike: examLike, Complexity: complexity})
				if got < 1 || got > 5 {
					t.Fatalf("Score out of range: %d for days=%d exam=%t complexity=%d", got, days, examLike, complexity)
				}
			}
		}
	}
}

func TestScore_Monotonic(t *testing.T) {
	// A task due sooner never scores below an otherwise identical task due
	// later.
	prev := Score(ScoreInput{DaysUntilDue: 0})
	for days := 1; days <= 30; days++ {
		cur := Score(ScoreInput{DaysUntilDue: days})
		if cur > prev {
			t.Fatalf("priority increased with distance: %d days scored %d, %d days scored %d", days-1, prev, days, cur)
		}
		prev = cur
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, time.August, 3, 8, 0, 0, 0, time.Local)

	if got := DaysUntil(now, now.Add(4*time.Hour)); got != 1 {
		t.Errorf("due later today = %d, want 1", got)
	}
	if got := DaysUntil(now, now.AddDate(0, 0, 3)); got != 3 {
		t.Errorf("due in 3 days = %d, want 3", got)
	}
	if got := DaysUntil(now, now.AddDate(0, 0, -2)); got != 0 {
		t.Errorf("past due = %d, want 0", got)
	}
}

func TestScoreTask_ExamKeywordsBoost(t *testing.T) {
	now := time.Date(2026, time.August, 3, 8, 0, 0, 0, time.Local)
	due := now.AddDate(0, 0, 5)

	exam := ScoreTask(models.Task{Title: "Midterm exam prep", DueDate: due}, now)
	plain := ScoreTask(models.Task{Title: "Tidy notes", DueDate: due}, now)
	if exam != 4 || plain != 3 {
		t.Errorf("exam-like scored %d (want 4), plain scored %d (want 3)", exam, plain)
	}
}

func TestScoreTask_HighPriorityCountsAsComplex(t *testing.T) {
	now := time.Date(2026, time.August, 3, 8, 0, 0, 0, time.Local)
	due := now.AddDate(0, 0, 3)

	high := ScoreTask(models.Task{DueDate: due, Priority: models.PriorityHigh}, now)
	low := ScoreTask(models.Task{DueDate: due, Priority: models.PriorityLow}, now)
	if high <= low {
		t.Errorf("high-priority task scored %d, low scored %d", high, low)
	}
}
