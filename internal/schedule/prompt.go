package schedule

import (
	"fmt"
	"strings"
)

// maxPromptChars bounds the serialized context. Oversized input is
// truncated rather than failing the request; quality may drop but the
// primary path must not crash.
const maxPromptChars = 30000

const systemPrompt = `You are an academic study planner. You produce study schedules as strict JSON.

Rules:
- Respond with a JSON array only. No prose, no markdown fences.
- Each element is an object with: "title" (string), "startTime" (ISO-8601), and either "endTime" (ISO-8601) or "duration" (minutes, integer). Optional: "priority" (1-5), "notes" (string).
- Never schedule on Sundays.
- Saturdays alternate: only even-parity Saturdays (week-of-month 2 and 4) are available, and only inside the Saturday window.
- On weekdays, schedule only inside the evening window.
- Never overlap a class or an exam.
- Prefer sessions of the user's preferred duration.
- Prioritize tasks due soon and upcoming exams.`

// buildPrompt serializes the generation context and the time-window rules
// into the user message for the text completion service.
func buildPrompt(ctx Context, p Policy) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Today is %s (%s).\n", ctx.Now.Format("2006-01-02"), ctx.Now.Weekday())
	fmt.Fprintf(&b, "Plan study sessions for the next %d days.\n\n", ctx.Days)

	fmt.Fprintf(&b, "Scheduling windows:\n")
	fmt.Fprintf(&b, "- Weekdays: %02d:00-%02d:00\n", p.WeekdayStartHour, p.WeekdayEndHour)
	fmt.Fprintf(&b, "- Even-parity Saturdays: %02d:00-%02d:00\n", p.SaturdayStartHour, p.SaturdayEndHour)
	fmt.Fprintf(&b, "- Odd-parity Saturdays and Sundays: no sessions\n")
	fmt.Fprintf(&b, "- Daily breaks to leave free: %d min play, %d min meals\n\n", p.PlayMinutes, p.MealMinutes)

	b.WriteString("Classes (recurring weekly):\n")
	if len(ctx.Classes) == 0 {
		b.WriteString("None\n")
	}
	for _, c := range ctx.Classes {
		fmt.Fprintf(&b, "- %s on %s %s-%s\n", c.Subject, c.DayOfWeek, c.StartTime, c.EndTime)
	}

	b.WriteString("\nTasks (incomplete, nearest due first):\n")
	if len(ctx.Tasks) == 0 {
		b.WriteString("None\n")
	}
	for _, t := range ctx.Tasks {
		fmt.Fprintf(&b, "- %q (%s), due %s, priority %s\n",
			t.Title, t.Subject, t.DueDate.Format("2006-01-02"), t.Priority)
	}

	b.WriteString("\nExams:\n")
	if len(ctx.Exams) == 0 {
		b.WriteString("None\n")
	}
	for _, e := range ctx.Exams {
		fmt.Fprintf(&b, "- %s on %s %s-%s\n",
			e.Subject, e.Date.Format("2006-01-02"), e.StartTime, e.EndTime)
	}

	if pref := ctx.Preference; pref != nil {
		fmt.Fprintf(&b, "\nPreferences: %d-minute sessions, preferred times: %s\n",
			pref.StudyPreferences.PreferredDurationMinutes,
			strings.Join(pref.StudyPreferences.PreferredTimes, ", "))
	}

	prompt := b.String()
	if len(prompt) > maxPromptChars {
		prompt = prompt[:maxPromptChars]
	}
	return prompt
}
