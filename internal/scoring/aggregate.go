package scoring

import (
	"fmt"
	"math"
)

// MaxScore is the ceiling of the final score.
const MaxScore = 100

// Weights are the per-section weights of the base score. They sum to 1.
type Weights struct {
	Experience float64
	Skills     float64
	Education  float64
}

// DefaultWeights grade experience 60%, skills 30% and education 10%.
var DefaultWeights = Weights{Experience: 0.60, Skills: 0.30, Education: 0.10}

// Validate checks the weights are non-negative and sum to 1.
func (w Weights) Validate() error {
	if w.Experience < 0 || w.Skills < 0 || w.Education < 0 {
		return fmt.Errorf("weights must be non-negative: %+v", w)
	}
	if sum := w.Experience + w.Skills + w.Education; math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("weights must sum to 1, got %.6f", sum)
	}
	return nil
}

// Aggregate is the combined score of one request.
type Aggregate struct {
	Base       float64
	Final      float64
	Experience float64
	Skills     float64
	Education  float64
	Bonus      int
}

// Combine weights the similarities into a base percentage, adds the bonus and
// caps the result at MaxScore. The base score itself is never capped; the
// final score is also floored at 0.
func (w Weights) Combine(sims Similarities, bonus int) Aggregate {
	weighted := w.Experience*sims.Experience + w.Skills*sims.Skills + w.Education*sims.Education
	base := round2(weighted * 100)
	final := math.Max(0, math.Min(MaxScore, round2(base+float64(bonus))))

	return Aggregate{
		Base:       base,
		Final:      final,
		Experience: round2(sims.Experience * 100),
		Skills:     round2(sims.Skills * 100),
		Education:  round2(sims.Education * 100),
		Bonus:      bonus,
	}
}

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
