package schedule

import (
	"encoding/json"
	"strings"
	"time"
)

// RawSlot is one candidate slot as returned by the completion service,
// before validation and conversion.
type RawSlot struct {
	Title     string `json:"title"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime,omitempty"`
	// Duration in minutes; used when EndTime is absent.
	Duration int    `json:"duration,omitempty"`
	Priority int    `json:"priority,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// ParseResult is the tagged outcome of lenient response parsing. All
// heuristics for the service's varying response shapes live in ParseSlots;
// the rest of the primary path only sees this union.
type ParseResult struct {
	OK     bool
	Slots  []RawSlot
	Reason string
}

func parseFailure(reason string) ParseResult {
	return ParseResult{Reason: reason}
}

// ParseSlots extracts candidate slots from a completion response. The
// service is asked for a bare JSON array but may wrap it in prose, in
// markdown fences, or in a {"studySlots": [...]} envelope; the first
// well-formed shape wins.
func ParseSlots(text string) ParseResult {
	text = strings.TrimSpace(text)
	if text == "" {
		return parseFailure("empty response")
	}

	if raw, ok := extractBalanced(text, '[', ']'); ok {
		var slots []RawSlot
		if err := json.Unmarshal([]byte(raw), &slots); err == nil {
			return checkSlots(slots)
		}
	}

	if raw, ok := extractBalanced(text, '{', '}'); ok {
		var envelope struct {
			StudySlots []RawSlot `json:"studySlots"`
		}
		if err := json.Unmarshal([]byte(raw), &envelope); err == nil && envelope.StudySlots != nil {
			return checkSlots(envelope.StudySlots)
		}
	}

	return parseFailure("no JSON array found in response")
}

func checkSlots(slots []RawSlot) ParseResult {
	if len(slots) == 0 {
		return parseFailure("response contained zero slots")
	}
	for _, s := range slots {
		if s.Title == "" || s.StartTime == "" {
			return parseFailure("slot missing title or startTime")
		}
		if s.EndTime == "" && s.Duration <= 0 {
			return parseFailure("slot missing both endTime and duration")
		}
	}
	return ParseResult{OK: true, Slots: slots}
}

// extractBalanced returns the first balanced substring delimited by open
// and close, tracking string literals so braces inside titles don't break
// the scan.
func extractBalanced(text string, open, close byte) (string, bool) {
	start := strings.IndexByte(text, open)
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// parseSlotTime parses the ISO-8601-ish timestamps the service produces.
// Layouts without a zone are interpreted in loc.
func parseSlotTime(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
