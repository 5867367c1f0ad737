package posting

import (
	"testing"
	"time"
)

func TestPostingOpenAt(t *testing.T) {
	p := Posting{
		Active:   true,
		OpensAt:  time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC),
		ClosesAt: time.Date(2026, 3, 20, 8, 0, 0, 0, time.UTC),
	}

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"just before opening day", time.Date(2026, 3, 9, 23, 59, 59, 0, time.UTC), false},
		{"opening day midnight", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), true},
		{"before stored opening clock time", time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), true},
		{"middle of window", time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC), true},
		{"after stored closing clock time", time.Date(2026, 3, 20, 22, 0, 0, 0, time.UTC), true},
		{"last instant of closing day", time.Date(2026, 3, 20, 23, 59, 59, 999_000_000, time.UTC), true},
		{"day after closing", time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		if got := p.OpenAt(tc.now); got != tc.want {
			t.Errorf("%s: OpenAt(%v) = %v, want %v", tc.name, tc.now, got, tc.want)
		}
	}
}

func TestPostingOpenAt_Inactive(t *testing.T) {
	p := Posting{
		Active:   false,
		OpensAt:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		ClosesAt: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
	}
	if p.OpenAt(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)) {
		t.Fatal("expected inactive posting to be closed inside its window")
	}
}

func TestPostingOpenAt_SingleDayWindow(t *testing.T) {
	day := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	p := Posting{Active: true, OpensAt: day, ClosesAt: day}

	if !p.OpenAt(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("expected single-day posting open at midnight")
	}
	if !p.OpenAt(time.Date(2026, 4, 1, 23, 59, 0, 0, time.UTC)) {
		t.Fatal("expected single-day posting open late in the day")
	}
	if p.OpenAt(time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("expected single-day posting closed the next day")
	}
}
