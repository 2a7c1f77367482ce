package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yungbote/wellspring-backend/internal/scoring"
	"github.com/yungbote/wellspring-backend/internal/types"
)

func TestLoadScoringTargets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "targets.yaml")
	content := `pillars:
  sleep:
    range_min: 7
    range_max: 9
    curve: linear_falloff
    outer_margin: 3
  connection:
    range_min: 1
    range_max: 3
    curve: step
  mindfulness:
    range_min: 0
    range_max: 1
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write targets: %v", err)
	}

	targets, err := LoadScoringTargets(path, nil)
	if err != nil {
		t.Fatalf("LoadScoringTargets: %v", err)
	}

	sleep := targets[types.PillarSleep]
	if sleep == nil || sleep.RangeMin == nil || *sleep.RangeMin != 7 || sleep.RangeMax == nil || *sleep.RangeMax != 9 {
		t.Fatalf("sleep target wrong: %+v", sleep)
	}
	if sleep.Curve != scoring.CurveLinearFalloff {
		t.Fatalf("sleep curve wrong: %q", sleep.Curve)
	}
	if sleep.OuterMargin == nil || *sleep.OuterMargin != 3 {
		t.Fatalf("sleep outer margin wrong: %+v", sleep.OuterMargin)
	}

	connection := targets[types.PillarConnection]
	if connection == nil || connection.Curve != scoring.CurveStep {
		t.Fatalf("connection target wrong: %+v", connection)
	}

	// Unknown pillars are dropped, not fatal.
	if len(targets) != 2 {
		t.Fatalf("expected 2 recognized pillars, got %d", len(targets))
	}
}

func TestLoadScoringTargetsMissingFile(t *testing.T) {
	targets, err := LoadScoringTargets(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	if err != nil {
		t.Fatalf("LoadScoringTargets: %v", err)
	}
	if len(targets) != 0 {
		t.Fatalf("expected empty targets for missing file, got %d", len(targets))
	}
}
