package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhisek/studyplan/internal/models"
)

// ErrNotFound is returned when a lookup matches no document owned by the
// requesting user.
var ErrNotFound = errors.New("not found")

// SlotQuery filters study slot lookups. Nil pointer fields are ignored.
type SlotQuery struct {
	Confirmed *bool
	Completed *bool
	Origin    models.SlotOrigin
	From      time.Time
	To        time.Time
}

// SlotPatch is a partial update to a study slot. Nil fields are untouched.
type SlotPatch struct {
	Confirmed *bool
	Completed *bool
	Notes     *string
}

// TaskRepo is read-only from the scheduling core's perspective; the CRUD
// handlers own mutation.
type TaskRepo interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error)
	// ListPendingByOwner returns the owner's incomplete tasks.
	ListPendingByOwner(ctx context.Context, ownerID string) ([]models.Task, error)
	FindByID(ctx context.Context, ownerID string, id primitive.ObjectID) (*models.Task, error)
	Insert(ctx context.Context, task *models.Task) error
	UpdateByID(ctx context.Context, ownerID string, id primitive.ObjectID, task *models.Task) error
	DeleteByID(ctx context.Context, ownerID string, id primitive.ObjectID) error
}

type ClassRepo interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.Class, error)
	Insert(ctx context.Context, class *models.Class) error
	UpdateByID(ctx context.Context, ownerID string, id primitive.ObjectID, class *models.Class) error
	DeleteByID(ctx context.Context, ownerID string, id primitive.ObjectID) error
}

type ExamRepo interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.Exam, error)
	Insert(ctx context.Context, exam *models.Exam) error
	UpdateByID(ctx context.Context, ownerID string, id primitive.ObjectID, exam *models.Exam) error
	DeleteByID(ctx context.Context, ownerID string, id primitive.ObjectID) error
}

type SlotRepo interface {
	// InsertMany assigns IDs and timestamps to the given slots and returns
	// the stored copies.
	InsertMany(ctx context.Context, slots []models.StudySlot) ([]models.StudySlot, error)
	Insert(ctx context.Context, slot *models.StudySlot) error
	// DeleteUnconfirmedExcept removes the owner's unconfirmed slots whose
	// IDs are not in keep. Regeneration inserts the fresh set first and
	// then calls this, so a failed insert never strands the user with an
	// empty schedule.
	DeleteUnconfirmedExcept(ctx context.Context, ownerID string, keep []primitive.ObjectID) (int64, error)
	FindByOwner(ctx context.Context, ownerID string, q SlotQuery) ([]models.StudySlot, error)
	FindByID(ctx context.Context, ownerID string, id primitive.ObjectID) (*models.StudySlot, error)
	UpdateByID(ctx context.Context, ownerID string, id primitive.ObjectID, patch SlotPatch) (*models.StudySlot, error)
	DeleteByID(ctx context.Context, ownerID string, id primitive.ObjectID) error
}

type PreferenceRepo interface {
	// GetByOwner returns ErrNotFound when the user has never saved
	// preferences; callers substitute models.DefaultPreference.
	GetByOwner(ctx context.Context, ownerID string) (*models.Preference, error)
	Upsert(ctx context.Context, pref *models.Preference) error
}

type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
	Insert(ctx context.Context, user *models.User) error
}

type AnalyticsRepo interface {
	// Latest returns the most recent rollup for the owner, or ErrNotFound.
	Latest(ctx context.Context, ownerID string) (*models.Analytics, error)
	// History returns the owner's rollups newest first, up to limit.
	History(ctx context.Context, ownerID string, limit int) ([]models.Analytics, error)
	Save(ctx context.Context, a *models.Analytics) error
}
