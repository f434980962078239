package schedule

import (
	"log"
	"sort"
	"time"

	"github.com/abhisek/studyplan/internal/models"
)

// minUsableGap is the shortest free interval worth reporting.
const minUsableGap = 30 * time.Minute

type busyBlock struct {
	start time.Time
	end   time.Time
}

// FreeBlocks computes the free intervals on date after subtracting the
// user's classes, exams, and already-scheduled slots from the day's
// eligible window. Classes are pre-filtered to the date's weekday here;
// exams and slots are filtered to the calendar day. Returns nil on
// blackout days.
func FreeBlocks(p Policy, date time.Time, classes []models.Class, exams []models.Exam, slots []models.StudySlot) []AvailabilityBlock {
	winStart, winEnd, ok := p.Window(date)
	if !ok {
		return nil
	}

	var busy []busyBlock
	for _, c := range classes {
		wd, ok := c.Weekday()
		if !ok {
			log.Printf("schedule: skipping class %q with unknown day %q", c.Subject, c.DayOfWeek)
			continue
		}
		if wd != date.Weekday() {
			continue
		}
		start, err := models.OnDate(date, c.StartTime)
		if err != nil {
			log.Printf("schedule: skipping class %q: %v", c.Subject, err)
			continue
		}
		end, err := models.OnDate(date, c.EndTime)
		if err != nil {
			log.Printf("schedule: skipping class %q: %v", c.Subject, err)
			continue
		}
		busy = append(busy, busyBlock{start: start, end: end})
	}
	for _, e := range exams {
		if !sameDay(e.Date, date) {
			continue
		}
		start, err := models.OnDate(date, e.StartTime)
		if err != nil {
			continue
		}
		end, err := models.OnDate(date, e.EndTime)
		if err != nil {
			continue
		}
		busy = append(busy, busyBlock{start: start, end: end})
	}
	for _, s := range slots {
		if !sameDay(s.StartTime, date) {
			continue
		}
		busy = append(busy, busyBlock{start: s.StartTime, end: s.EndTime})
	}

	sort.Slice(busy, func(i, j int) bool { return busy[i].start.Before(busy[j].start) })

	var free []AvailabilityBlock
	cursor := winStart
	for _, b := range busy {
		if !b.end.After(winStart) || !b.start.Before(winEnd) {
			continue
		}
		if b.start.After(cursor) {
			gapEnd := b.start
			if gapEnd.After(winEnd) {
				gapEnd = winEnd
			}
			if gapEnd.Sub(cursor) >= minUsableGap {
				free = append(free, AvailabilityBlock{Start: cursor, End: gapEnd})
			}
		}
		if b.end.After(cursor) {
			cursor = b.end
		}
	}
	if winEnd.Sub(cursor) >= minUsableGap {
		free = append(free, AvailabilityBlock{Start: cursor, End: winEnd})
	}
	return free
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
