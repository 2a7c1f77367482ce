package scoring

import "math"

// CurveType selects how values outside the optimal range decay.
type CurveType string

const (
	// CurveStep scores 100 inside the optimal range and 0 outside it.
	CurveStep CurveType = "step"
	// CurveLinearFalloff scores 100 inside the range and decays linearly
	// to 0 over the outer margin. This is the default curve.
	CurveLinearFalloff CurveType = "linear_falloff"
)

// MetricScoring is the policy a raw measurement is scored against. Nil
// bounds leave the metric unscored rather than failing.
type MetricScoring struct {
	RangeMin    *float64  `yaml:"range_min" json:"range_min"`
	RangeMax    *float64  `yaml:"range_max" json:"range_max"`
	Curve       CurveType `yaml:"curve" json:"curve"`
	OuterMargin *float64  `yaml:"outer_margin" json:"outer_margin,omitempty"`
}

// Score normalizes a raw measurement to 0..100 against the policy. The
// result is nil when no policy or either bound is absent: insufficient
// configuration is "unscored", never an error.
func Score(value float64, policy *MetricScoring) *float64 {
	if policy == nil || policy.RangeMin == nil || policy.RangeMax == nil {
		return nil
	}
	min := *policy.RangeMin
	max := *policy.RangeMax

	if value >= min && value <= max {
		return ptr(100)
	}

	if policy.Curve == CurveStep {
		return ptr(0)
	}

	distance := value - max
	if value < min {
		distance = min - value
	}
	margin := max - min
	if policy.OuterMargin != nil {
		margin = *policy.OuterMargin
	}
	// Zero-width ranges and degenerate margins would otherwise divide by
	// zero; the divisor floors at 1 either way.
	if margin < 1 {
		margin = 1
	}
	score := math.Round(100 * math.Max(0, 1-distance/margin))
	return &score
}

// Average combines already-normalized scores into one domain score. Fewer
// than minimumCount samples returns nil instead of a misleading mean.
func Average(scores []float64, minimumCount int) *float64 {
	if len(scores) == 0 || len(scores) < minimumCount {
		return nil
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	avg := math.Round(sum / float64(len(scores)))
	return &avg
}

func ptr(f float64) *float64 { return &f }
