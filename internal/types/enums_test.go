package types

import (
	"errors"
	"testing"

	"github.com/yungbote/wellspring-backend/internal/apperr"
)

func TestParsePlanItemStatus(t *testing.T) {
	cases := []struct {
		in      string
		want    PlanItemStatus
		wantErr bool
	}{
		{"pending", PlanItemStatusPending, false},
		{"done", PlanItemStatusDone, false},
		{"skipped", PlanItemStatusSkipped, false},
		{"  DONE ", PlanItemStatusDone, false},
		{"archived", "", true},
		{"", "", true},
	}
	for _, c := range cases {
		got, err := ParsePlanItemStatus(c.in)
		if c.wantErr {
			if !errors.Is(err, apperr.ErrInvalidArgument) {
				t.Fatalf("ParsePlanItemStatus(%q): expected ErrInvalidArgument, got %v", c.in, err)
			}
			continue
		}
		if err != nil || got != c.want {
			t.Fatalf("ParsePlanItemStatus(%q) = %q, %v; want %q", c.in, got, err, c.want)
		}
	}
}

func TestParseAdaptationTrigger(t *testing.T) {
	for _, valid := range []string{"missed_items", "item_skipped", "consistency_gap"} {
		if _, err := ParseAdaptationTrigger(valid); err != nil {
			t.Fatalf("ParseAdaptationTrigger(%q): %v", valid, err)
		}
	}
	if _, err := ParseAdaptationTrigger("user_requested"); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestParsePillar(t *testing.T) {
	for _, p := range AllPillars {
		got, err := ParsePillar(string(p))
		if err != nil || got != p {
			t.Fatalf("ParsePillar(%q) = %q, %v", p, got, err)
		}
	}
	if _, err := ParsePillar("focus"); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
