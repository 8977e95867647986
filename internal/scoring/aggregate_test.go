package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeights_Validate(t *testing.T) {
	assert.NoError(t, DefaultWeights.Validate())
	assert.NoError(t, Weights{Experience: 1}.Validate())
	assert.Error(t, Weights{Experience: 0.5, Skills: 0.5, Education: 0.5}.Validate())
	assert.Error(t, Weights{Experience: 1.2, Skills: -0.2}.Validate())
}

func TestWeights_Combine(t *testing.T) {
	tests := []struct {
		name  string
		sims  Similarities
		bonus int
		base  float64
		final float64
	}{
		{name: "plain", sims: Similarities{0.5, 0.5, 0.5}, base: 50, final: 50},
		{name: "weighted", sims: Similarities{0.8, 0.7, 0.6}, base: 75, final: 75},
		{name: "bonus added", sims: Similarities{0.8, 0.7, 0.6}, bonus: 20, base: 75, final: 95},
		{name: "capped at 100", sims: Similarities{0.8, 0.7, 0.6}, bonus: 30, base: 75, final: 100},
		{name: "base is not capped", sims: Similarities{1.5, 1.5, 1.5}, base: 150, final: 100},
		{name: "floored at 0", sims: Similarities{-0.5, -0.5, -0.5}, base: -50, final: 0},
		{name: "zero", base: 0, final: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := DefaultWeights.Combine(tt.sims, tt.bonus)
			assert.InDelta(t, tt.base, agg.Base, 1e-9)
			assert.InDelta(t, tt.final, agg.Final, 1e-9)
			assert.Equal(t, tt.bonus, agg.Bonus)
		})
	}
}

func TestWeights_CombineBreakdownRounding(t *testing.T) {
	agg := DefaultWeights.Combine(Similarities{Experience: 0.123456, Skills: 0.98766, Education: 0.5}, 0)
	assert.InDelta(t, 12.35, agg.Experience, 1e-9)
	assert.InDelta(t, 98.77, agg.Skills, 1e-9)
	assert.InDelta(t, 50.0, agg.Education, 1e-9)
}

func TestWeights_CombineFinalInRange(t *testing.T) {
	for _, sim := range []float64{-1, -0.3, 0, 0.25, 0.5, 0.99, 1} {
		for _, bonus := range []int{0, 5, 25, 100} {
			agg := DefaultWeights.Combine(Similarities{sim, sim, sim}, bonus)
			assert.GreaterOrEqual(t, agg.Final, 0.0)
			assert.LessOrEqual(t, agg.Final, 100.0)
		}
	}
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 1.24, round2(1.2351), 1e-9)
	assert.InDelta(t, -1.24, round2(-1.2351), 1e-9)
	assert.InDelta(t, 3.0, round2(3), 1e-9)
}
