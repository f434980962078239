package schedule

import "time"

// Policy encodes which calendar days and hours are eligible for study.
//
// Sundays are always blacked out. Saturdays alternate by week-of-month
// parity: odd-parity Saturdays are blacked out, even-parity Saturdays are
// open all day. Weekdays are open only in the evening, on the assumption
// that mornings and afternoons are taken by classes.
type Policy struct {
	// WeekdayStartHour..WeekdayEndHour is the Mon-Fri study window.
	WeekdayStartHour int
	WeekdayEndHour   int
	// SaturdayStartHour..SaturdayEndHour is the open-Saturday window.
	SaturdayStartHour int
	SaturdayEndHour   int
	// PlayMinutes and MealMinutes are daily break budgets surfaced to the
	// primary path's prompt; they do not constrain the fallback planner.
	PlayMinutes int
	MealMinutes int
}

// DefaultPolicy returns the documented defaults: weekdays 18:00-22:00,
// open Saturdays 09:00-21:00, one hour each of play and meal breaks.
func DefaultPolicy() Policy {
	return Policy{
		WeekdayStartHour:  18,
		WeekdayEndHour:    22,
		SaturdayStartHour: 9,
		SaturdayEndHour:   21,
		PlayMinutes:       60,
		MealMinutes:       60,
	}
}

// saturdayParity is ceil(dayOfMonth/7) mod 2. Recomputed per date, never
// cached, because it shifts across month boundaries.
func saturdayParity(date time.Time) int {
	week := (date.Day() + 6) / 7
	return week % 2
}

// IsBlackout reports whether no study slots may be generated on date.
func (p Policy) IsBlackout(date time.Time) bool {
	switch date.Weekday() {
	case time.Sunday:
		return true
	case time.Saturday:
		return saturdayParity(date) == 1
	default:
		return false
	}
}

// Window returns the eligible study window on date, or ok=false when the
// date is blacked out.
func (p Policy) Window(date time.Time) (start, end time.Time, ok bool) {
	if p.IsBlackout(date) {
		return time.Time{}, time.Time{}, false
	}
	startHour, endHour := p.WeekdayStartHour, p.WeekdayEndHour
	if date.Weekday() == time.Saturday {
		startHour, endHour = p.SaturdayStartHour, p.SaturdayEndHour
	}
	start = time.Date(date.Year(), date.Month(), date.Day(), startHour, 0, 0, 0, date.Location())
	end = time.Date(date.Year(), date.Month(), date.Day(), endHour, 0, 0, 0, date.Location())
	return start, end, true
}

// StartHours returns the hours at which a session may begin on date, used
// by the fallback planner's deterministic hour selection. Weekdays offer
// every whole hour in the evening window; open Saturdays offer three bands
// (morning, early afternoon, late afternoon). Empty on blackout days.
func (p Policy) StartHours(date time.Time) []int {
	if p.IsBlackout(date) {
		return nil
	}
	if date.Weekday() == time.Saturday {
		span := p.SaturdayEndHour - p.SaturdayStartHour
		hours := []int{p.SaturdayStartHour}
		if span >= 8 {
			hours = append(hours, p.SaturdayStartHour+4, p.SaturdayStartHour+8)
		} else if span >= 4 {
			hours = append(hours, p.SaturdayStartHour+4)
		}
		return hours
	}
	var hours []int
	for h := p.WeekdayStartHour; h < p.WeekdayEndHour; h++ {
		hours = append(hours, h)
	}
	return hours
}
