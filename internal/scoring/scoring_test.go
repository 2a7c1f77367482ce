package scoring

import (
	"math"
	"testing"
)

func fptr(f float64) *float64 { return &f }

func policyWith(min, max float64, curve CurveType) *MetricScoring {
	return &MetricScoring{RangeMin: &min, RangeMax: &max, Curve: curve}
}

func TestScoreInsideRangeIsAlways100(t *testing.T) {
	for _, curve := range []CurveType{CurveStep, CurveLinearFalloff, ""} {
		p := policyWith(60, 80, curve)
		for _, v := range []float64{60, 61.5, 70, 79.99, 80} {
			got := Score(v, p)
			if got == nil || *got != 100 {
				t.Fatalf("curve %q value %v: want 100, got %v", curve, v, got)
			}
		}
	}
}

func TestScoreStepOutsideRangeIsZero(t *testing.T) {
	p := policyWith(60, 80, CurveStep)
	for _, v := range []float64{0, 59.99, 80.01, 1000, -5} {
		got := Score(v, p)
		if got == nil || *got != 0 {
			t.Fatalf("value %v: want 0, got %v", v, got)
		}
	}
}

func TestScoreLinearFalloff(t *testing.T) {
	// Range width 20 is the default outer margin.
	p := policyWith(60, 80, CurveLinearFalloff)
	cases := []struct {
		value float64
		want  float64
	}{
		{90, 50},   // 10 over, margin 20
		{85, 75},   // 5 over
		{100, 0},   // exactly one margin past
		{150, 0},   // floors at 0, never negative
		{55, 75},   // 5 under
		{40, 0},    // one margin under
		{-100, 0},
	}
	for _, tc := range cases {
		got := Score(tc.value, p)
		if got == nil || *got != tc.want {
			t.Fatalf("value %v: want %v, got %v", tc.value, tc.want, got)
		}
	}
}

func TestScoreLinearFalloffMonotone(t *testing.T) {
	p := policyWith(60, 80, CurveLinearFalloff)
	prev := math.Inf(1)
	for v := 80.0; v <= 140; v += 0.5 {
		got := Score(v, p)
		if got == nil {
			t.Fatalf("value %v: unexpected nil", v)
		}
		if *got > prev {
			t.Fatalf("score increased with distance at value %v: %v > %v", v, *got, prev)
		}
		if *got < 0 {
			t.Fatalf("negative score at value %v: %v", v, *got)
		}
		prev = *got
	}
}

func TestScoreExplicitOuterMargin(t *testing.T) {
	p := policyWith(60, 80, CurveLinearFalloff)
	p.OuterMargin = fptr(40)
	got := Score(100, p) // 20 over, margin 40
	if got == nil || *got != 50 {
		t.Fatalf("want 50, got %v", got)
	}
}

func TestScoreNonPositiveOuterMarginFloorsAtOne(t *testing.T) {
	for _, m := range []float64{-5, 0} {
		p := policyWith(60, 80, CurveLinearFalloff)
		p.OuterMargin = fptr(m)
		if got := Score(80.5, p); got == nil || *got != 50 {
			t.Fatalf("margin %v, 0.5 over: want 50, got %v", m, got)
		}
		if got := Score(81, p); got == nil || *got != 0 {
			t.Fatalf("margin %v, 1 over: want 0, got %v", m, got)
		}
		if got := Score(70, p); got == nil || *got != 100 {
			t.Fatalf("margin %v, in range: want 100, got %v", m, got)
		}
	}
}

func TestScoreZeroWidthRange(t *testing.T) {
	p := policyWith(8, 8, CurveLinearFalloff)
	for _, v := range []float64{8, 8.5, 7, 100, -100} {
		got := Score(v, p)
		if got == nil {
			t.Fatalf("value %v: unexpected nil", v)
		}
		if math.IsNaN(*got) || math.IsInf(*got, 0) {
			t.Fatalf("value %v: non-finite score %v", v, *got)
		}
	}
	if got := Score(8, p); *got != 100 {
		t.Fatalf("in-range value on zero-width range: want 100, got %v", *got)
	}
	if got := Score(7.5, p); *got != 50 {
		t.Fatalf("0.5 outside zero-width range with margin 1: want 50, got %v", *got)
	}
}

func TestScoreAbsentPolicyOrBounds(t *testing.T) {
	if got := Score(70, nil); got != nil {
		t.Fatalf("nil policy: want nil, got %v", *got)
	}
	if got := Score(70, &MetricScoring{RangeMax: fptr(80)}); got != nil {
		t.Fatalf("missing min: want nil, got %v", *got)
	}
	if got := Score(70, &MetricScoring{RangeMin: fptr(60)}); got != nil {
		t.Fatalf("missing max: want nil, got %v", *got)
	}
}

func TestScoreDeterministic(t *testing.T) {
	p := policyWith(60, 80, CurveLinearFalloff)
	a := Score(93.7, p)
	b := Score(93.7, p)
	if a == nil || b == nil || *a != *b {
		t.Fatalf("same inputs produced different scores: %v vs %v", a, b)
	}
}

func TestAverage(t *testing.T) {
	if got := Average(nil, 1); got != nil {
		t.Fatalf("empty with min 1: want nil, got %v", *got)
	}
	if got := Average([]float64{80, 90, 100}, 3); got == nil || *got != 90 {
		t.Fatalf("want 90, got %v", got)
	}
	if got := Average([]float64{80, 90}, 3); got != nil {
		t.Fatalf("below minimum count: want nil, got %v", *got)
	}
	if got := Average([]float64{80, 85}, 2); got == nil || *got != 83 {
		t.Fatalf("want 83 (rounded 82.5), got %v", got)
	}
}
