package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhisek/studyplan/internal/models"
)

// Memory is an in-process Store equivalent backed by maps. It exists for
// tests and for running the server without a database.
type Memory struct {
	mu          sync.Mutex
	tasks       []models.Task
	classes     []models.Class
	exams       []models.Exam
	slots       []models.StudySlot
	preferences map[string]models.Preference
	users       []models.User
	analytics   []models.Analytics
}

func NewMemory() *Memory {
	return &Memory{preferences: make(map[string]models.Preference)}
}

func (m *Memory) Tasks() TaskRepo             { return &memTaskRepo{m: m} }
func (m *Memory) Classes() ClassRepo          { return &memClassRepo{m: m} }
func (m *Memory) Exams() ExamRepo             { return &memExamRepo{m: m} }
func (m *Memory) Slots() SlotRepo             { return &memSlotRepo{m: m} }
func (m *Memory) Preferences() PreferenceRepo { return &memPreferenceRepo{m: m} }
func (m *Memory) Users() UserRepo             { return &memUserRepo{m: m} }
func (m *Memory) Analytics() AnalyticsRepo    { return &memAnalyticsRepo{m: m} }

type memTaskRepo struct{ m *Memory }

func (r *memTaskRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Task, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.Task
	for _, t := range r.m.tasks {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (r *memTaskRepo) ListPendingByOwner(ctx context.Context, ownerID string) ([]models.Task, error) {
	all, _ := r.ListByOwner(ctx, ownerID)
	var out []models.Task
	for _, t := range all {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTaskRepo) FindByID(_ context.Context, ownerID string, id primitive.ObjectID) (*models.Task, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, t := range r.m.tasks {
		if t.ID == id && t.OwnerID == ownerID {
			out := t
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memTaskRepo) Insert(_ context.Context, task *models.Task) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	r.m.tasks = append(r.m.tasks, *task)
	return nil
}

func (r *memTaskRepo) UpdateByID(_ context.Context, ownerID string, id primitive.ObjectID, task *models.Task) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, t := range r.m.tasks {
		if t.ID == id && t.OwnerID == ownerID {
			task.ID = id
			task.OwnerID = ownerID
			task.CreatedAt = t.CreatedAt
			task.UpdatedAt = time.Now()
			r.m.tasks[i] = *task
			return nil
		}
	}
	return ErrNotFound
}

func (r *memTaskRepo) DeleteByID(_ context.Context, ownerID string, id primitive.ObjectID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, t := range r.m.tasks {
		if t.ID == id && t.OwnerID == ownerID {
			r.m.tasks = append(r.m.tasks[:i], r.m.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type memClassRepo struct{ m *Memory }

func (r *memClassRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Class, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.Class
	for _, c := range r.m.classes {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memClassRepo) Insert(_ context.Context, class *models.Class) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if class.ID.IsZero() {
		class.ID = primitive.NewObjectID()
	}
	now := time.Now()
	class.CreatedAt = now
	class.UpdatedAt = now
	r.m.classes = append(r.m.classes, *class)
	return nil
}

func (r *memClassRepo) UpdateByID(_ context.Context, ownerID string, id primitive.ObjectID, class *models.Class) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, c := range r.m.classes {
		if c.ID == id && c.OwnerID == ownerID {
			class.ID = id
			class.OwnerID = ownerID
			class.CreatedAt = c.CreatedAt
			class.UpdatedAt = time.Now()
			r.m.classes[i] = *class
			return nil
		}
	}
	return ErrNotFound
}

func (r *memClassRepo) DeleteByID(_ context.Context, ownerID string, id primitive.ObjectID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, c := range r.m.classes {
		if c.ID == id && c.OwnerID == ownerID {
			r.m.classes = append(r.m.classes[:i], r.m.classes[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type memExamRepo struct{ m *Memory }

func (r *memExamRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Exam, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.Exam
	for _, e := range r.m.exams {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memExamRepo) UpdateByID(_ context.Context, ownerID string, id primitive.ObjectID, exam *models.Exam) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, e := range r.m.exams {
		if e.ID == id && e.OwnerID == ownerID {
			exam.ID = id
			exam.OwnerID = ownerID
			exam.CreatedAt = e.CreatedAt
			exam.UpdatedAt = time.Now()
			r.m.exams[i] = *exam
			return nil
		}
	}
	return ErrNotFound
}

func (r *memExamRepo) Insert(_ context.Context, exam *models.Exam) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if exam.ID.IsZero() {
		exam.ID = primitive.NewObjectID()
	}
	now := time.Now()
	exam.CreatedAt = now
	exam.UpdatedAt = now
	r.m.exams = append(r.m.exams, *exam)
	return nil
}

func (r *memExamRepo) DeleteByID(_ context.Context, ownerID string, id primitive.ObjectID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, e := range r.m.exams {
		if e.ID == id && e.OwnerID == ownerID {
			r.m.exams = append(r.m.exams[:i], r.m.exams[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type memSlotRepo struct{ m *Memory }

func (r *memSlotRepo) InsertMany(_ context.Context, slots []models.StudySlot) ([]models.StudySlot, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	now := time.Now()
	for i := range slots {
		if slots[i].ID.IsZero() {
			slots[i].ID = primitive.NewObjectID()
		}
		slots[i].CreatedAt = now
		slots[i].UpdatedAt = now
		r.m.slots = append(r.m.slots, slots[i])
	}
	return slots, nil
}

func (r *memSlotRepo) Insert(_ context.Context, slot *models.StudySlot) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if slot.ID.IsZero() {
		slot.ID = primitive.NewObjectID()
	}
	now := time.Now()
	slot.CreatedAt = now
	slot.UpdatedAt = now
	r.m.slots = append(r.m.slots, *slot)
	return nil
}

func (r *memSlotRepo) DeleteUnconfirmedExcept(_ context.Context, ownerID string, keep []primitive.ObjectID) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	keepSet := make(map[primitive.ObjectID]bool, len(keep))
	for _, id := range keep {
		keepSet[id] = true
	}
	var kept []models.StudySlot
	var deleted int64
	for _, s := range r.m.slots {
		if s.OwnerID == ownerID && !s.Confirmed && !keepSet[s.ID] {
			deleted++
			continue
		}
		kept = append(kept, s)
	}
	r.m.slots = kept
	return deleted, nil
}

func (r *memSlotRepo) FindByOwner(_ context.Context, ownerID string, q SlotQuery) ([]models.StudySlot, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.StudySlot
	for _, s := range r.m.slots {
		if s.OwnerID != ownerID {
			continue
		}
		if q.Confirmed != nil && s.Confirmed != *q.Confirmed {
			continue
		}
		if q.Completed != nil && s.Completed != *q.Completed {
			continue
		}
		if q.Origin != "" && s.Origin != q.Origin {
			continue
		}
		if !q.From.IsZero() && s.StartTime.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && !s.StartTime.Before(q.To) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *memSlotRepo) FindByID(_ context.Context, ownerID string, id primitive.ObjectID) (*models.StudySlot, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, s := range r.m.slots {
		if s.ID == id && s.OwnerID == ownerID {
			out := s
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memSlotRepo) UpdateByID(_ context.Context, ownerID string, id primitive.ObjectID, patch SlotPatch) (*models.StudySlot, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, s := range r.m.slots {
		if s.ID != id || s.OwnerID != ownerID {
			continue
		}
		if patch.Confirmed != nil {
			s.Confirmed = *patch.Confirmed
		}
		if patch.Completed != nil {
			s.Completed = *patch.Completed
		}
		if patch.Notes != nil {
			s.Notes = *patch.Notes
		}
		s.UpdatedAt = time.Now()
		r.m.slots[i] = s
		out := s
		return &out, nil
	}
	return nil, ErrNotFound
}

func (r *memSlotRepo) DeleteByID(_ context.Context, ownerID string, id primitive.ObjectID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, s := range r.m.slots {
		if s.ID == id && s.OwnerID == ownerID {
			r.m.slots = append(r.m.slots[:i], r.m.slots[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type memPreferenceRepo struct{ m *Memory }

func (r *memPreferenceRepo) GetByOwner(_ context.Context, ownerID string) (*models.Preference, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	pref, ok := r.m.preferences[ownerID]
	if !ok {
		return nil, ErrNotFound
	}
	out := pref
	return &out, nil
}

func (r *memPreferenceRepo) Upsert(_ context.Context, pref *models.Preference) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	pref.UpdatedAt = time.Now()
	r.m.preferences[pref.OwnerID] = *pref
	return nil
}

type memUserRepo struct{ m *Memory }

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memUserRepo) CountByEmail(_ context.Context, email string) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for _, u := range r.m.users {
		if strings.EqualFold(u.Email, email) {
			n++
		}
	}
	return n, nil
}

func (r *memUserRepo) Insert(_ context.Context, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now()
	r.m.users = append(r.m.users, *user)
	return nil
}

type memAnalyticsRepo struct{ m *Memory }

func (r *memAnalyticsRepo) Latest(_ context.Context, ownerID string) (*models.Analytics, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var latest *models.Analytics
	for i := range r.m.analytics {
		a := r.m.analytics[i]
		if a.OwnerID != ownerID {
			continue
		}
		// >= so equal timestamps resolve to the most recently saved doc;
		// consecutive recorder saves can share a clock reading.
		if latest == nil || !a.GeneratedAt.Before(latest.GeneratedAt) {
			out := a
			latest = &out
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return latest, nil
}

func (r *memAnalyticsRepo) History(_ context.Context, ownerID string, limit int) ([]models.Analytics, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.Analytics
	for i := len(r.m.analytics) - 1; i >= 0; i-- {
		if r.m.analytics[i].OwnerID == ownerID {
			out = append(out, r.m.analytics[i])
		}
	}
	// Collected newest-insert first; the stable sort keeps that order for
	// equal timestamps.
	sort.SliceStable(out, func(i, j int) bool { return out[i].GeneratedAt.After(out[j].GeneratedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memAnalyticsRepo) Save(_ context.Context, a *models.Analytics) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	r.m.analytics = append(r.m.analytics, *a)
	return nil
}
