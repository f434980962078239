package schedule

import (
	"fmt"
	"hash/fnv"
	"log"
	"sort"
	"time"

	"github.com/abhisek/studyplan/internal/models"
)

// FallbackPlanner synthesizes study slots directly from the user's classes,
// tasks, and exams. It is the path of last resort, so it alone must
// guarantee every scheduling rule: blackout days, time windows, no overlap
// with fixed commitments, and the (title, startTime, durationMinutes)
// dedup invariant.
type FallbackPlanner struct {
	policy Policy
}

func NewFallbackPlanner(policy Policy) *FallbackPlanner {
	return &FallbackPlanner{policy: policy}
}

const (
	taskSlotMinutes = 60
	examSlotMinutes = 90
	// maxFallbackTasks caps the task pass to the nearest-due tasks.
	maxFallbackTasks = 10
	// sparseThreshold triggers the weeks 3-4 extension of the class pass.
	sparseThreshold = 5
)

// Plan generates slots in three passes (tasks, exams, classes) and returns
// them deduplicated and sorted ascending by start time. Zero underlying
// data yields an empty list; no placeholder sessions are fabricated.
func (f *FallbackPlanner) Plan(ctx Context) []models.StudySlot {
	var slots []models.StudySlot
	seen := make(dedupSet)

	slots = f.planTasks(ctx, slots, seen)
	slots = f.planExams(ctx, slots, seen)
	slots = f.planClasses(ctx, slots, seen)

	sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime.Before(slots[j].StartTime) })
	return slots
}

// place fits a session of the given length on date. The preferred hour is
// used when it falls inside a free block; otherwise the session goes to the
// start of the earliest block that can hold it. Free blocks subtract the
// user's classes and exams and the slots already planned, so no session
// double-books a fixed commitment. Reports ok=false when the day is
// blacked out or has no room.
func (f *FallbackPlanner) place(ctx Context, planned []models.StudySlot, date time.Time, preferredHour, minutes int) (time.Time, bool) {
	dur := time.Duration(minutes) * time.Minute
	preferred := time.Date(date.Year(), date.Month(), date.Day(), preferredHour, 0, 0, 0, date.Location())

	blocks := FreeBlocks(f.policy, date, ctx.Classes, ctx.Exams, planned)
	for _, b := range blocks {
		if !preferred.Before(b.Start) && !preferred.Add(dur).After(b.End) {
			return preferred, true
		}
	}
	for _, b := range blocks {
		if b.Duration() >= dur {
			return b.Start, true
		}
	}
	return time.Time{}, false
}

// planTasks places up to maxFallbackTasks nearest-due incomplete tasks, one
// 60-minute session each, across the next 7 days. The hour within the day's
// window is chosen by a hash of (taskID, dayOffset) so regeneration is
// reproducible while sessions still spread across the window.
func (f *FallbackPlanner) planTasks(ctx Context, slots []models.StudySlot, seen dedupSet) []models.StudySlot {
	tasks := make([]models.Task, 0, len(ctx.Tasks))
	for _, t := range ctx.Tasks {
		if !t.Completed {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].DueDate.Before(tasks[j].DueDate) })
	if len(tasks) > maxFallbackTasks {
		tasks = tasks[:maxFallbackTasks]
	}

	for i, t := range tasks {
		dayOffset := i % 7
		date := ctx.Now.AddDate(0, 0, dayOffset)
		hours := f.policy.StartHours(date)
		if len(hours) == 0 {
			continue
		}
		hour := hours[hashPick(t.ID.Hex(), dayOffset, len(hours))]
		start, ok := f.place(ctx, slots, date, hour, taskSlotMinutes)
		if !ok {
			continue
		}
		slot := models.StudySlot{
			OwnerID:         ctx.OwnerID,
			TaskID:          t.ID.Hex(),
			Title:           fmt.Sprintf("Study %s: %s", t.Subject, t.Title),
			StartTime:       start,
			EndTime:         start.Add(taskSlotMinutes * time.Minute),
			DurationMinutes: taskSlotMinutes,
			Origin:          models.OriginAIGenerated,
			Priority:        ScoreTask(t, ctx.Now),
			Source:          models.SourceRuleBased,
		}
		if seen.add(slot) {
			slots = append(slots, slot)
		}
	}
	return slots
}

// planExams generates prep sessions for exams due within 14 days: three
// sessions when the exam is 3 days out or closer, two within a week,
// otherwise one. Sessions are 90 minutes at priority 5, placed on the
// nearest valid days before the exam.
func (f *FallbackPlanner) planExams(ctx Context, slots []models.StudySlot, seen dedupSet) []models.StudySlot {
	for _, e := range ctx.Exams {
		daysOut := DaysUntil(ctx.Now, e.Date)
		if e.Date.Before(startOfDay(ctx.Now)) || daysOut > 14 {
			continue
		}
		sessions := 1
		switch {
		case daysOut <= 3:
			sessions = 3
		case daysOut <= 7:
			sessions = 2
		}

		placed := 0
		for offset := 0; offset < 14 && placed < sessions; offset++ {
			date := ctx.Now.AddDate(0, 0, offset)
			if f.policy.IsBlackout(date) {
				continue
			}
			start, ok := f.place(ctx, slots, date, f.examHour(date, placed), examSlotMinutes)
			if !ok {
				continue
			}
			slot := models.StudySlot{
				OwnerID:         ctx.OwnerID,
				Title:           fmt.Sprintf("Prepare for %s Exam", e.Subject),
				StartTime:       start,
				EndTime:         start.Add(examSlotMinutes * time.Minute),
				DurationMinutes: examSlotMinutes,
				Origin:          models.OriginAIGenerated,
				Priority:        5,
				Source:          models.SourceRuleBased,
			}
			if seen.add(slot) {
				slots = append(slots, slot)
				placed++
			}
		}
	}
	return slots
}

// examHour picks the prep-session start hour: the middle of the weekday
// evening window, or one of the open-Saturday bands rotated by session
// index so multiple same-day sessions land in different bands.
func (f *FallbackPlanner) examHour(date time.Time, session int) int {
	if date.Weekday() == time.Saturday {
		bands := f.policy.StartHours(date)
		return bands[session%len(bands)]
	}
	return f.policy.WeekdayStartHour + 1
}

// planClasses is the common-case generator for new users with no tasks or
// exams yet. For each class occurrence over the next two weeks it emits a
// same-day review slot at the window start and a practice slot two days
// later. When two weeks produce a sparse schedule it extends through weeks
// three and four with a single lower-priority weekly review per occurrence.
func (f *FallbackPlanner) planClasses(ctx Context, slots []models.StudySlot, seen dedupSet) []models.StudySlot {
	type occurrence struct {
		class models.Class
		date  time.Time
	}
	occurrences := func(fromWeek, toWeek int) []occurrence {
		var out []occurrence
		for _, c := range ctx.Classes {
			wd, ok := c.Weekday()
			if !ok {
				log.Printf("schedule: skipping class %q with unknown day %q", c.Subject, c.DayOfWeek)
				continue
			}
			if _, _, err := models.ParseClockTime(c.StartTime); err != nil {
				log.Printf("schedule: skipping class %q: %v", c.Subject, err)
				continue
			}
			for week := fromWeek; week < toWeek; week++ {
				date := nextWeekday(ctx.Now, wd).AddDate(0, 0, 7*week)
				out = append(out, occurrence{class: c, date: date})
			}
		}
		return out
	}

	emit := func(date time.Time, hour int, subject, activity string, priority int) {
		start, ok := f.place(ctx, slots, date, hour, taskSlotMinutes)
		if !ok {
			return
		}
		slot := models.StudySlot{
			OwnerID:         ctx.OwnerID,
			Title:           fmt.Sprintf("Study %s: %s", subject, activity),
			StartTime:       start,
			EndTime:         start.Add(taskSlotMinutes * time.Minute),
			DurationMinutes: taskSlotMinutes,
			Origin:          models.OriginAIGenerated,
			Priority:        priority,
			Source:          models.SourceRuleBased,
		}
		if seen.add(slot) {
			slots = append(slots, slot)
		}
	}

	for _, occ := range occurrences(0, 2) {
		emit(occ.date, f.reviewHour(occ.date), occ.class.Subject, "Review Today's Material", 3)
		practiceDay := occ.date.AddDate(0, 0, 2)
		emit(practiceDay, f.practiceHour(practiceDay), occ.class.Subject, "Practice Problems", 3)
	}

	if len(slots) < sparseThreshold {
		for _, occ := range occurrences(2, 4) {
			emit(occ.date, f.weeklyHour(occ.date), occ.class.Subject, "Weekly Review", 2)
		}
	}
	return slots
}

func (f *FallbackPlanner) reviewHour(date time.Time) int {
	if date.Weekday() == time.Saturday {
		return f.policy.SaturdayStartHour + 1
	}
	return f.policy.WeekdayStartHour
}

func (f *FallbackPlanner) practiceHour(date time.Time) int {
	if date.Weekday() == time.Saturday {
		return f.policy.SaturdayStartHour + 5
	}
	return f.policy.WeekdayStartHour + 1
}

func (f *FallbackPlanner) weeklyHour(date time.Time) int {
	if date.Weekday() == time.Saturday {
		return f.policy.SaturdayStartHour + 7
	}
	return f.policy.WeekdayStartHour + 2
}

// nextWeekday returns the first date on or after now falling on wd.
func nextWeekday(now time.Time, wd time.Weekday) time.Time {
	days := (int(wd) - int(now.Weekday()) + 7) % 7
	return startOfDay(now).AddDate(0, 0, days)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// hashPick maps (id, offset) into [0, n) deterministically, replacing the
// random hour pick so regeneration with unchanged inputs is reproducible.
func hashPick(id string, offset, n int) int {
	h := fnv.New32a()
	h.Write([]byte(id))
	h.Write([]byte{byte(offset)})
	return int(h.Sum32() % uint32(n))
}
