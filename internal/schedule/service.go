package schedule

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhisek/studyplan/internal/models"
	"github.com/abhisek/studyplan/internal/store"
)

// ErrNoClasses is returned when generation is requested before the user has
// added any classes. It is a client error, not a generation failure.
var ErrNoClasses = errors.New("cannot generate a schedule without at least one class")

// Service owns the schedule lifecycle: generation with persistence
// reconciliation, and the suggested/confirmed/completed transitions.
type Service struct {
	tasks   store.TaskRepo
	classes store.ClassRepo
	exams   store.ExamRepo
	slots   store.SlotRepo
	prefs   store.PreferenceRepo

	gen  *Generator
	hook Hook

	now func() time.Time
}

// NewService wires the schedule service. hook may be nil.
func NewService(tasks store.TaskRepo, classes store.ClassRepo, exams store.ExamRepo, slots store.SlotRepo, prefs store.PreferenceRepo, gen *Generator, hook Hook) *Service {
	if hook == nil {
		hook = NopHook{}
	}
	return &Service{
		tasks:   tasks,
		classes: classes,
		exams:   exams,
		slots:   slots,
		prefs:   prefs,
		gen:     gen,
		hook:    hook,
		now:     time.Now,
	}
}

// GenerateSchedule runs a full generation request: gather the user's data,
// generate candidate slots, and reconcile persistence. Fresh slots are
// inserted before stale unconfirmed ones are removed, so a failed insert
// never strands the user with an empty schedule.
//
// Two racing generations for the same user are not coordinated; the later
// writer's unconfirmed set wins.
func (s *Service) GenerateSchedule(ctx context.Context, ownerID string, days int) (*Result, error) {
	classes, err := s.classes.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	if len(classes) == 0 {
		return nil, ErrNoClasses
	}

	tasks, err := s.tasks.ListPendingByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	exams, err := s.exams.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}
	pref, err := s.prefs.GetByOwner(ctx, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		pref = models.DefaultPreference(ownerID)
	} else if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}

	result := s.gen.Generate(ctx, Context{
		OwnerID:    ownerID,
		Tasks:      tasks,
		Classes:    classes,
		Exams:      exams,
		Preference: pref,
		Days:       days,
		Now:        s.now(),
	})

	for i := range result.Slots {
		result.Slots[i].OwnerID = ownerID
		result.Slots[i].Confirmed = false
		result.Slots[i].Completed = false
	}

	inserted, err := s.slots.InsertMany(ctx, result.Slots)
	if err != nil {
		return nil, fmt.Errorf("store generated slots: %w", err)
	}
	keep := make([]primitive.ObjectID, len(inserted))
	for i, slot := range inserted {
		keep[i] = slot.ID
	}
	if _, err := s.slots.DeleteUnconfirmedExcept(ctx, ownerID, keep); err != nil {
		return nil, fmt.Errorf("remove stale suggestions: %w", err)
	}

	result.Slots = inserted
	return &result, nil
}

// Suggestions returns the user's unconfirmed generated slots.
func (s *Service) Suggestions(ctx context.Context, ownerID string) ([]models.StudySlot, error) {
	confirmed := false
	return s.slots.FindByOwner(ctx, ownerID, store.SlotQuery{Confirmed: &confirmed})
}

// Confirmed returns the user's confirmed slots.
func (s *Service) Confirmed(ctx context.Context, ownerID string) ([]models.StudySlot, error) {
	confirmed := true
	return s.slots.FindByOwner(ctx, ownerID, store.SlotQuery{Confirmed: &confirmed})
}

// Confirm marks a suggested slot as confirmed. Idempotent; confirmation is
// one-way and never reverts.
func (s *Service) Confirm(ctx context.Context, ownerID string, id primitive.ObjectID) (*models.StudySlot, error) {
	confirmed := true
	slot, err := s.slots.UpdateByID(ctx, ownerID, id, store.SlotPatch{Confirmed: &confirmed})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, EventConfirmed, slot)
	return slot, nil
}

// Complete marks a slot as completed. Completing an unconfirmed slot
// confirms it as well; completion never reverts.
func (s *Service) Complete(ctx context.Context, ownerID string, id primitive.ObjectID) (*models.StudySlot, error) {
	confirmed, completed := true, true
	slot, err := s.slots.UpdateByID(ctx, ownerID, id, store.SlotPatch{Confirmed: &confirmed, Completed: &completed})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, EventCompleted, slot)
	return slot, nil
}

// Delete removes a slot in any state.
func (s *Service) Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	slot, err := s.slots.FindByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.slots.DeleteByID(ctx, ownerID, id); err != nil {
		return err
	}
	s.emit(ctx, EventDeleted, slot)
	return nil
}

// CreateManual stores a user-created slot. Manual slots enter the lifecycle
// already confirmed.
func (s *Service) CreateManual(ctx context.Context, slot *models.StudySlot) error {
	if !slot.EndTime.After(slot.StartTime) {
		return errors.New("slot end time must be after start time")
	}
	slot.DurationMinutes = int(slot.EndTime.Sub(slot.StartTime).Minutes())
	slot.Origin = models.OriginManual
	slot.Confirmed = true
	slot.Completed = false
	if slot.Priority < 1 || slot.Priority > 5 {
		slot.Priority = 3
	}
	if slot.Source == "" {
		slot.Source = string(models.OriginManual)
	}
	if err := s.slots.Insert(ctx, slot); err != nil {
		return fmt.Errorf("store slot: %w", err)
	}
	return nil
}

func (s *Service) emit(ctx context.Context, kind EventKind, slot *models.StudySlot) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("schedule: %s hook panicked: %v", kind, r)
		}
	}()
	s.hook.SlotEvent(ctx, Event{
		Kind:            kind,
		OwnerID:         slot.OwnerID,
		SlotID:          slot.ID.Hex(),
		Subject:         slot.Subject(),
		DurationMinutes: slot.DurationMinutes,
	})
}
