package types

import (
	"testing"
	"time"
)

func TestPlanWeekStart(t *testing.T) {
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday midnight stays", monday, monday},
		{"monday evening snaps back", time.Date(2026, 8, 24, 23, 59, 0, 0, time.UTC), monday},
		{"wednesday", time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC), monday},
		{"sunday maps to prior monday", time.Date(2026, 8, 30, 6, 0, 0, 0, time.UTC), monday},
		{"next monday starts a new week", time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		if got := PlanWeekStart(c.in); !got.Equal(c.want) {
			t.Fatalf("%s: PlanWeekStart(%s) = %s, want %s", c.name, c.in, got, c.want)
		}
	}
}

func TestPlanWeekStartNonUTCInput(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	// Tuesday 03:00 in UTC+10 is Monday 17:00 UTC.
	in := time.Date(2026, 8, 25, 3, 0, 0, 0, loc)
	want := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if got := PlanWeekStart(in); !got.Equal(want) {
		t.Fatalf("PlanWeekStart(%s) = %s, want %s", in, got, want)
	}
}
