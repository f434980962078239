package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Class is a recurring weekly fixed commitment. Times are wall-clock "15:04"
// strings with no date; the availability finder projects them onto concrete
// dates.
type Class struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID      string             `bson:"owner_id" json:"ownerId"`
	Subject      string             `bson:"subject" json:"subject" binding:"required"`
	DayOfWeek    string             `bson:"day_of_week" json:"dayOfWeek" binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime    string             `bson:"start_time" json:"startTime" binding:"required,clocktime"`
	EndTime      string             `bson:"end_time" json:"endTime" binding:"required,clocktime"`
	RepeatWeekly bool               `bson:"repeat_weekly" json:"repeatWeekly"`
	Location     string             `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

var weekdayNames = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// Weekday resolves the class's day-of-week name. The second return is false
// for malformed records, which the planner skips with a warning.
func (c *Class) Weekday() (time.Weekday, bool) {
	wd, ok := weekdayNames[c.DayOfWeek]
	return wd, ok
}

// ParseClockTime parses a wall-clock "15:04" string into hour and minute.
func ParseClockTime(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// OnDate projects a wall-clock "15:04" string onto the given date.
func OnDate(date time.Time, clock string) (time.Time, error) {
	h, m, err := ParseClockTime(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location()), nil
}
