package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(v float64) FactorVector {
	return FactorVector{
		SkillMatch:        v,
		BudgetMatch:       v,
		LocationMatch:     v,
		ExperienceMatch:   v,
		ResponseTime:      v,
		SuccessRate:       v,
		VerificationBonus: v,
	}
}

func TestAggregate(t *testing.T) {
	w := DefaultConfig().Weights

	assert.Equal(t, 100, Aggregate(uniform(1), w))
	assert.Equal(t, 0, Aggregate(uniform(0), w))
	assert.Equal(t, 50, Aggregate(uniform(0.5), w))

	f := FactorVector{SkillMatch: 1, BudgetMatch: 0.5}
	assert.Equal(t, 35, Aggregate(f, w))

	// Weights are applied as given, even when they overshoot
	doubled := w
	doubled.SkillMatch = 0.5
	doubled.BudgetMatch = 0.45
	assert.Equal(t, 150, Aggregate(uniform(1), doubled))

	nan := w
	nan.SkillMatch = math.NaN()
	assert.Equal(t, 0, Aggregate(uniform(1), nan))
}

func TestCheckWeights(t *testing.T) {
	require.NoError(t, CheckWeights(DefaultConfig().Weights))

	heavy := DefaultConfig().Weights
	heavy.SkillMatch = 0.45
	err := CheckWeights(heavy)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWeightsNotNormalized)
	assert.Contains(t, err.Error(), "1.2000")

	negative := DefaultConfig().Weights
	negative.SkillMatch = -0.25
	negative.BudgetMatch = 0.7
	err = CheckWeights(negative)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWeightsNotNormalized)
	assert.Contains(t, err.Error(), "skillMatch weight is -0.25")

	slightlyOff := DefaultConfig().Weights
	slightlyOff.VerificationBonus += 0.0005
	assert.NoError(t, CheckWeights(slightlyOff))
}

func TestFilterByThreshold(t *testing.T) {
	in := []scored{
		{candidate: Candidate{ID: "a"}, score: 29},
		{candidate: Candidate{ID: "b"}, score: 30},
		{candidate: Candidate{ID: "c"}, score: 90},
	}

	out := filterByThreshold(in, 30)
	require.Len(t, out, 2)
	assert.Equal(t, "b", out[0].candidate.ID)
	assert.Equal(t, "c", out[1].candidate.ID)

	assert.Empty(t, filterByThreshold(in, 91))
	assert.Len(t, filterByThreshold(in, 0), 3)
}

func TestRank(t *testing.T) {
	in := []scored{
		{candidate: Candidate{ID: "low"}, score: 40},
		{candidate: Candidate{ID: "tie-b"}, score: 80, factors: FactorVector{SkillMatch: 0.5}},
		{candidate: Candidate{ID: "tie-skill"}, score: 80, factors: FactorVector{SkillMatch: 0.9}},
		{candidate: Candidate{ID: "tie-a"}, score: 80, factors: FactorVector{SkillMatch: 0.5}},
		{candidate: Candidate{ID: "top"}, score: 95},
	}

	out := rank(in, 10)
	ids := make([]string, 0, len(out))
	for _, s := range out {
		ids = append(ids, s.candidate.ID)
	}
	assert.Equal(t, []string{"top", "tie-skill", "tie-a", "tie-b", "low"}, ids)

	assert.Len(t, rank(out, 2), 2)
	assert.Empty(t, rank(nil, 10))
}

func TestReasons(t *testing.T) {
	assert.Len(t, Reasons(uniform(0.9)), 7)
	assert.Equal(t, "Excellent skill match for your requirements", Reasons(uniform(0.9))[0])

	soft := Reasons(uniform(0.7))
	assert.Equal(t, []string{
		"Good skill alignment with your needs",
		"Budget is within your range",
		"Convenient location for your project",
		"Good experience level for your project",
	}, soft)

	// 0.8 is not above the strong cut-off
	assert.Equal(t, soft, Reasons(uniform(0.8)))

	assert.NotNil(t, Reasons(uniform(0)))
	assert.Empty(t, Reasons(uniform(0.6)))
}

func TestRecommendations(t *testing.T) {
	recs := Recommendations(uniform(0.4))
	assert.Equal(t, []string{
		"Consider asking about specific skills needed for your project",
		"Discuss budget flexibility to find common ground",
		"Consider remote work options if location is a concern",
		"Set clear communication expectations and timelines",
		"Request additional verification or references",
	}, recs)

	assert.Empty(t, Recommendations(uniform(0.5)))
	assert.NotNil(t, Recommendations(uniform(1)))

	only := Recommendations(FactorVector{
		SkillMatch:        1,
		BudgetMatch:       1,
		LocationMatch:     1,
		ExperienceMatch:   0,
		ResponseTime:      1,
		SuccessRate:       0,
		VerificationBonus: 0,
	})
	assert.Equal(t, []string{"Request additional verification or references"}, only)
}

func TestQuality(t *testing.T) {
	th := DefaultConfig().Thresholds

	tests := []struct {
		score int
		want  QualityLabel
		label string
	}{
		{100, QualityExcellent, "Excellent Match"},
		{85, QualityExcellent, "Excellent Match"},
		{84, QualityGreat, "Great Match"},
		{70, QualityGreat, "Great Match"},
		{69, QualityGood, "Good Match"},
		{50, QualityGood, "Good Match"},
		{49, QualityFair, "Fair Match"},
		{0, QualityFair, "Fair Match"},
	}

	for _, tt := range tests {
		q := Quality(tt.score, th)
		assert.Equal(t, tt.want, q, "score %d", tt.score)
		assert.Equal(t, tt.label, q.Label())
		assert.NotEmpty(t, q.Description())
	}

	custom := Thresholds{Minimum: 10, High: 40, Excellent: 60}
	assert.Equal(t, QualityExcellent, Quality(60, custom))
	assert.Equal(t, QualityGreat, Quality(45, custom))
}
