package schedule

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestIsBlackout(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name     string
		date     time.Time
		blackout bool
	}{
		{"sunday", date(2026, time.August, 2), true},
		{"monday", date(2026, time.August, 3), false},
		{"friday", date(2026, time.August, 7), false},
		{"first saturday odd parity", date(2026, time.August, 1), true},
		{"second saturday even parity", date(2026, time.August, 8), false},
		{"third saturday odd parity", date(2026, time.August, 15), true},
		{"fourth saturday even parity", date(2026, time.August, 22), false},
		{"fifth saturday odd parity", date(2026, time.August, 29), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.IsBlackout(tt.date); got != tt.blackout {
				t.Errorf("IsBlackout(%s) = %v, want %v", tt.date.Format("2006-01-02"), got, tt.blackout)
			}
		})
	}
}

func TestSaturdayParityNotCached(t *testing.T) {
	p := DefaultPolicy()

	// The same nth-Saturday flips parity across months with different
	// alignment: recomputation per occurrence matters.
	if !p.IsBlackout(date(2026, time.August, 1)) {
		t.Error("expected first Saturday of August blacked out")
	}
	if p.IsBlackout(date(2026, time.August, 8)) {
		t.Error("expected second Saturday of August open")
	}
}

func TestWindow(t *testing.T) {
	p := DefaultPolicy()

	start, end, ok := p.Window(date(2026, time.August, 3))
	if !ok {
		t.Fatal("expected Monday to have a window")
	}
	if start.Hour() != 18 || end.Hour() != 22 {
		t.Errorf("weekday window = %d-%d, want 18-22", start.Hour(), end.Hour())
	}

	start, end, ok = p.Window(date(2026, time.August, 8))
	if !ok {
		t.Fatal("expected even Saturday to have a window")
	}
	if start.Hour() != 9 || end.Hour() != 21 {
		t.Errorf("saturday window = %d-%d, want 9-21", start.Hour(), end.Hour())
	}

	if _, _, ok := p.Window(date(2026, time.August, 2)); ok {
		t.Error("expected no window on Sunday")
	}
	if _, _, ok := p.Window(date(2026, time.August, 15)); ok {
		t.Error("expected no window on odd Saturday")
	}
}

func TestStartHours(t *testing.T) {
	p := DefaultPolicy()

	weekday := p.StartHours(date(2026, time.August, 3))
	want := []int{18, 19, 20, 21}
	if len(weekday) != len(want) {
		t.Fatalf("weekday hours = %v, want %v", weekday, want)
	}
	for i, h := range want {
		if weekday[i] != h {
			t.Errorf("weekday hours = %v, want %v", weekday, want)
			break
		}
	}

	saturday := p.StartHours(date(2026, time.August, 8))
	wantSat := []int{9, 13, 17}
	if len(saturday) != len(wantSat) {
		t.Fatalf("saturday hours = %v, want %v", saturday, wantSat)
	}
	for i, h := range wantSat {
		if saturday[i] != h {
			t.Errorf("saturday hours = %v, want %v", saturday, wantSat)
			break
		}
	}

	if hours := p.StartHours(date(2026, time.August, 2)); hours != nil {
		t.Errorf("expected no start hours on Sunday, got %v", hours)
	}
}
