package schedule

import (
	"testing"
	"time"
)

func TestParseSlots_BareArray(t *testing.T) {
	res := ParseSlots(`[{"title":"Study Physics: Review","startTime":"2026-08-03T18:00:00","duration":60}]`)
	if !res.OK {
		t.Fatalf("expected OK, got reason %q", res.Reason)
	}
	if len(res.Slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(res.Slots))
	}
	if res.Slots[0].Title != "Study Physics: Review" {
		t.Errorf("unexpected title %q", res.Slots[0].Title)
	}
	if res.Slots[0].Duration != 60 {
		t.Errorf("unexpected duration %d", res.Slots[0].Duration)
	}
}

func TestParseSlots_ProseWrapped(t *testing.T) {
	text := `Here is your study schedule for the week:

[{"title":"Study Math: Practice","startTime":"2026-08-04T19:00:00","endTime":"2026-08-04T20:00:00"}]

Let me know if you'd like adjustments!`
	res := ParseSlots(text)
	if !res.OK {
		t.Fatalf("expected OK, got reason %q", res.Reason)
	}
	if res.Slots[0].EndTime != "2026-08-04T20:00:00" {
		t.Errorf("unexpected endTime %q", res.Slots[0].EndTime)
	}
}

func TestParseSlots_MarkdownFenced(t *testing.T) {
	text := "```json\n[{\"title\":\"Study Chemistry: Notes\",\"startTime\":\"2026-08-05T18:00:00\",\"duration\":45}]\n```"
	res := ParseSlots(text)
	if !res.OK {
		t.Fatalf("expected OK, got reason %q", res.Reason)
	}
}

func TestParseSlots_Envelope(t *testing.T) {
	res := ParseSlots(`{"studySlots":[{"title":"Study Biology: Review","startTime":"2026-08-06T18:00:00","duration":60}]}`)
	if !res.OK {
		t.Fatalf("expected OK, got reason %q", res.Reason)
	}
	if len(res.Slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(res.Slots))
	}
}

func TestParseSlots_BracketsInsideStrings(t *testing.T) {
	res := ParseSlots(`[{"title":"Study CS: Arrays [part 1]","startTime":"2026-08-03T18:00:00","duration":60}]`)
	if !res.OK {
		t.Fatalf("expected OK, got reason %q", res.Reason)
	}
	if res.Slots[0].Title != "Study CS: Arrays [part 1]" {
		t.Errorf("unexpected title %q", res.Slots[0].Title)
	}
}

func TestParseSlots_Failures(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"prose only", "I could not generate a schedule at this time."},
		{"empty array", "[]"},
		{"missing title", `[{"startTime":"2026-08-03T18:00:00","duration":60}]`},
		{"missing start", `[{"title":"Study Math","duration":60}]`},
		{"no end or duration", `[{"title":"Study Math","startTime":"2026-08-03T18:00:00"}]`},
		{"envelope without slots", `{"message":"no schedule"}`},
		{"truncated json", `[{"title":"Study Math","startTime":"2026-`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseSlots(tt.text)
			if res.OK {
				t.Errorf("expected failure, got %d slots", len(res.Slots))
			}
			if res.Reason == "" {
				t.Error("expected a reason on failure")
			}
		})
	}
}

func TestParseSlotTime(t *testing.T) {
	loc := time.Local
	layouts := []string{
		"2026-08-03T18:00:00Z",
		"2026-08-03T18:00:00",
		"2026-08-03T18:00",
		"2026-08-03 18:00",
	}
	for _, s := range layouts {
		if _, ok := parseSlotTime(s, loc); !ok {
			t.Errorf("failed to parse %q", s)
		}
	}
	if _, ok := parseSlotTime("next tuesday", loc); ok {
		t.Error("expected failure on non-timestamp input")
	}
}

func TestValidateSlotArray(t *testing.T) {
	good := []RawSlot{{Title: "Study Math: Practice", StartTime: "2026-08-03T18:00:00", Duration: 60}}
	if err := validateSlotArray(good); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}

	bad := []RawSlot{{Title: "Study Math: Practice", StartTime: "2026-08-03T18:00:00"}}
	if err := validateSlotArray(bad); err == nil {
		t.Error("expected validation to reject a slot with no endTime and no duration")
	}
}
