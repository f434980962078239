package schedule

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/studyplan/internal/models"
	"github.com/abhisek/studyplan/internal/store"
)

type recordingHook struct {
	mu     sync.Mutex
	events []Event
}

func (h *recordingHook) SlotEvent(_ context.Context, ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, ev)
}

func (h *recordingHook) kinds() []EventKind {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]EventKind, len(h.events))
	for i, ev := range h.events {
		out[i] = ev.Kind
	}
	return out
}

func newTestService(t *testing.T) (*Service, *store.Memory, *recordingHook) {
	t.Helper()
	mem := store.NewMemory()
	hook := &recordingHook{}
	gen := NewGenerator(nil, DefaultPolicy(), 0, 0, 0)
	svc := NewService(mem.Tasks(), mem.Classes(), mem.Exams(), mem.Slots(), mem.Preferences(), gen, hook)
	svc.now = func() time.Time { return monday }
	return svc, mem, hook
}

func seedClass(t *testing.T, mem *store.Memory, ownerID string) {
	t.Helper()
	c := physicsClass()
	c.OwnerID = ownerID
	if err := mem.Classes().Insert(context.Background(), &c); err != nil {
		t.Fatalf("seed class: %v", err)
	}
}

func TestGenerateSchedule_NoClassesRejected(t *testing.T) {
	svc, mem, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.GenerateSchedule(ctx, "u1", 7)
	if !errors.Is(err, ErrNoClasses) {
		t.Fatalf("expected ErrNoClasses, got %v", err)
	}

	slots, err := mem.Slots().FindByOwner(ctx, "u1", store.SlotQuery{})
	if err != nil {
		t.Fatalf("find slots: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected zero slots inserted, got %d", len(slots))
	}
}

func TestGenerateSchedule_PersistsSlots(t *testing.T) {
	svc, mem, _ := newTestService(t)
	ctx := context.Background()
	seedClass(t, mem, "u1")

	res, err := svc.GenerateSchedule(ctx, "u1", 7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Source != models.SourceRuleBased {
		t.Errorf("source = %q, want rule-based", res.Source)
	}
	if len(res.Slots) == 0 {
		t.Fatal("expected slots")
	}

	stored, err := svc.Suggestions(ctx, "u1")
	if err != nil {
		t.Fatalf("suggestions: %v", err)
	}
	if len(stored) != len(res.Slots) {
		t.Errorf("stored %d slots, returned %d", len(stored), len(res.Slots))
	}
	for _, s := range stored {
		if s.Confirmed || s.Completed {
			t.Errorf("fresh slot %q should be unconfirmed and incomplete", s.Title)
		}
		if s.ID.IsZero() {
			t.Errorf("stored slot %q has no id", s.Title)
		}
	}
}

func TestGenerateSchedule_RegenerationReplacesUnconfirmed(t *testing.T) {
	svc, mem, _ := newTestService(t)
	ctx := context.Background()
	seedClass(t, mem, "u1")

	first, err := svc.GenerateSchedule(ctx, "u1", 7)
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}

	// Confirm one slot; it must survive regeneration.
	confirmed, err := svc.Confirm(ctx, "u1", first.Slots[0].ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}

	second, err := svc.GenerateSchedule(ctx, "u1", 7)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}

	all, err := mem.Slots().FindByOwner(ctx, "u1", store.SlotQuery{})
	if err != nil {
		t.Fatalf("find slots: %v", err)
	}
	if len(all) != len(second.Slots)+1 {
		t.Errorf("expected fresh set plus the confirmed slot, got %d slots (fresh %d)", len(all), len(second.Slots))
	}

	var confirmedSurvived bool
	for _, s := range all {
		if s.ID == confirmed.ID {
			confirmedSurvived = true
			if !s.Confirmed {
				t.Error("confirmed slot lost its confirmation")
			}
		}
		for _, f := range first.Slots {
			if f.ID == confirmed.ID {
				continue
			}
			if s.ID == f.ID {
				t.Errorf("stale unconfirmed slot %q survived regeneration", s.Title)
			}
		}
	}
	if !confirmedSurvived {
		t.Error("confirmed slot was deleted by regeneration")
	}
}

func TestGenerateSchedule_Deterministic(t *testing.T) {
	svc, mem, _ := newTestService(t)
	ctx := context.Background()
	seedClass(t, mem, "u1")

	first, err := svc.GenerateSchedule(ctx, "u1", 7)
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	second, err := svc.GenerateSchedule(ctx, "u1", 7)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}

	if len(first.Slots) != len(second.Slots) {
		t.Fatalf("regeneration changed slot count: %d vs %d", len(first.Slots), len(second.Slots))
	}
	for i := range first.Slots {
		if first.Slots[i].Title != second.Slots[i].Title ||
			!first.Slots[i].StartTime.Equal(second.Slots[i].StartTime) ||
			first.Slots[i].DurationMinutes != second.Slots[i].DurationMinutes {
			t.Errorf("regeneration diverged at %d", i)
		}
	}
}

func TestConfirm_Transition(t *testing.T) {
	svc, mem, hook := newTestService(t)
	ctx := context.Background()
	seedClass(t, mem, "u1")

	res, err := svc.GenerateSchedule(ctx, "u1", 7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	target := res.Slots[0]

	slot, err := svc.Confirm(ctx, "u1", target.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !slot.Confirmed {
		t.Error("slot not confirmed")
	}
	if slot.Priority != target.Priority || slot.Source != target.Source {
		t.Error("confirmation changed priority or source")
	}

	suggestions, _ := svc.Suggestions(ctx, "u1")
	for _, s := range suggestions {
		if s.ID == target.ID {
			t.Error("confirmed slot still listed as a suggestion")
		}
	}
	confirmed, _ := svc.Confirmed(ctx, "u1")
	var found bool
	for _, s := range confirmed {
		if s.ID == target.ID {
			found = true
		}
	}
	if !found {
		t.Error("confirmed slot missing from confirmed list")
	}

	kinds := hook.kinds()
	if len(kinds) != 1 || kinds[0] != EventConfirmed {
		t.Errorf("expected one confirmed event, got %v", kinds)
	}
}

func TestComplete_ImpliesConfirmed(t *testing.T) {
	svc, mem, hook := newTestService(t)
	ctx := context.Background()
	seedClass(t, mem, "u1")

	res, err := svc.GenerateSchedule(ctx, "u1", 7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	slot, err := svc.Complete(ctx, "u1", res.Slots[0].ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !slot.Confirmed || !slot.Completed {
		t.Errorf("completed slot state: confirmed=%t completed=%t", slot.Confirmed, slot.Completed)
	}

	kinds := hook.kinds()
	if len(kinds) != 1 || kinds[0] != EventCompleted {
		t.Errorf("expected one completed event, got %v", kinds)
	}
}

func TestDelete_AnyState(t *testing.T) {
	svc, mem, hook := newTestService(t)
	ctx := context.Background()
	seedClass(t, mem, "u1")

	res, err := svc.GenerateSchedule(ctx, "u1", 7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	target := res.Slots[0]
	if _, err := svc.Confirm(ctx, "u1", target.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if err := svc.Delete(ctx, "u1", target.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := mem.Slots().FindByID(ctx, "u1", target.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected slot removed, got %v", err)
	}

	kinds := hook.kinds()
	if len(kinds) != 2 || kinds[1] != EventDeleted {
		t.Errorf("expected confirmed then deleted events, got %v", kinds)
	}
}

func TestDelete_UnknownSlot(t *testing.T) {
	svc, mem, _ := newTestService(t)
	seedClass(t, mem, "u1")

	err := svc.Delete(context.Background(), "u1", physicsClass().ID)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateManual_EntersConfirmed(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	slot := &models.StudySlot{
		OwnerID:   "u1",
		Title:     "Study Art: Sketching",
		StartTime: time.Date(2026, time.August, 4, 19, 0, 0, 0, time.Local),
		EndTime:   time.Date(2026, time.August, 4, 20, 30, 0, 0, time.Local),
	}
	if err := svc.CreateManual(ctx, slot); err != nil {
		t.Fatalf("create manual: %v", err)
	}
	if slot.Origin != models.OriginManual {
		t.Errorf("origin = %q, want manual", slot.Origin)
	}
	if !slot.Confirmed {
		t.Error("manual slot should enter confirmed")
	}
	if slot.DurationMinutes != 90 {
		t.Errorf("duration = %d, want 90", slot.DurationMinutes)
	}

	confirmed, err := svc.Confirmed(ctx, "u1")
	if err != nil {
		t.Fatalf("confirmed: %v", err)
	}
	if len(confirmed) != 1 {
		t.Errorf("expected 1 confirmed slot, got %d", len(confirmed))
	}
}

func TestCreateManual_RejectsInvertedInterval(t *testing.T) {
	svc, _, _ := newTestService(t)

	slot := &models.StudySlot{
		OwnerID:   "u1",
		Title:     "Study Art: Sketching",
		StartTime: time.Date(2026, time.August, 4, 20, 0, 0, 0, time.Local),
		EndTime:   time.Date(2026, time.August, 4, 19, 0, 0, 0, time.Local),
	}
	if err := svc.CreateManual(context.Background(), slot); err == nil {
		t.Error("expected error for end before start")
	}
}
