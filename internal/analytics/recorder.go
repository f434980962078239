package analytics

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhisek/studyplan/internal/models"
	"github.com/abhisek/studyplan/internal/schedule"
	"github.com/abhisek/studyplan/internal/store"
)

// Recorder consumes slot lifecycle events and maintains the per-user
// analytics rollup. It implements schedule.Hook. Recording failures are
// logged and dropped; analytics must never fail the operation that
// triggered the event.
type Recorder struct {
	repo store.AnalyticsRepo
	now  func() time.Time
}

func NewRecorder(repo store.AnalyticsRepo) *Recorder {
	return &Recorder{repo: repo, now: time.Now}
}

func (r *Recorder) SlotEvent(ctx context.Context, ev schedule.Event) {
	rollup, err := r.load(ctx, ev.OwnerID)
	if err != nil {
		log.Printf("analytics: load rollup for %s: %v", ev.OwnerID, err)
		return
	}

	rollup.EnsureSubject(ev.Subject)
	stats := rollup.Subjects[ev.Subject]

	switch ev.Kind {
	case schedule.EventConfirmed:
		rollup.ConfirmedSlots++
		stats.ConfirmedSlots++
	case schedule.EventCompleted:
		rollup.CompletedSlots++
		stats.CompletedSlots++
		rollup.TotalStudyHours += float64(ev.DurationMinutes) / 60
	case schedule.EventDeleted:
		rollup.DeletedSlots++
		stats.DeletedSlots++
	default:
		return
	}
	if ev.Subject != "" {
		rollup.Subjects[ev.Subject] = stats
	}

	rollup.GeneratedAt = r.now()
	if err := r.repo.Save(ctx, rollup); err != nil {
		log.Printf("analytics: save rollup for %s: %v", ev.OwnerID, err)
	}
}

// RecordGenerated counts freshly generated slots into the rollup. Called
// by the generation handler, outside the lifecycle hook.
func (r *Recorder) RecordGenerated(ctx context.Context, ownerID string, slots []models.StudySlot) {
	if len(slots) == 0 {
		return
	}
	rollup, err := r.load(ctx, ownerID)
	if err != nil {
		log.Printf("analytics: load rollup for %s: %v", ownerID, err)
		return
	}
	rollup.TotalSlots += len(slots)
	for _, s := range slots {
		subject := s.Subject()
		if subject == "" {
			continue
		}
		rollup.EnsureSubject(subject)
		stats := rollup.Subjects[subject]
		stats.TotalSlots++
		rollup.Subjects[subject] = stats
	}
	rollup.GeneratedAt = r.now()
	if err := r.repo.Save(ctx, rollup); err != nil {
		log.Printf("analytics: save rollup for %s: %v", ownerID, err)
	}
}

func (r *Recorder) load(ctx context.Context, ownerID string) (*models.Analytics, error) {
	rollup, err := r.repo.Latest(ctx, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		return &models.Analytics{
			OwnerID:  ownerID,
			Subjects: make(map[string]models.SubjectStats),
		}, nil
	}
	if err != nil {
		return nil, err
	}
	// Saved as a fresh document so history accumulates; reset the id.
	rollup.ID = primitive.NilObjectID
	if rollup.Subjects == nil {
		rollup.Subjects = make(map[string]models.SubjectStats)
	}
	return rollup, nil
}
