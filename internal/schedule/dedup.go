package schedule

import (
	"fmt"

	"github.com/abhisek/studyplan/internal/models"
)

// dedupSet drops candidate slots that repeat an already-seen
// (title, startTime, durationMinutes) triple.
type dedupSet map[string]struct{}

func dedupKey(s models.StudySlot) string {
	return fmt.Sprintf("%s|%d|%d", s.Title, s.StartTime.Unix(), s.DurationMinutes)
}

// add records the slot and reports whether it was new.
func (d dedupSet) add(s models.StudySlot) bool {
	k := dedupKey(s)
	if _, seen := d[k]; seen {
		return false
	}
	d[k] = struct{}{}
	return true
}
