package matching

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vijay-prabhu/smartmatch/internal/logger"
)

var testNow = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestScorer(t *testing.T) *factorScorer {
	t.Helper()
	return newFactorScorer(
		SubstringMatcher{},
		DefaultCategoryKeywords(),
		NewGeoResolver(DefaultRegionTable(), nil),
		testNow,
		logger.NewTestLogger(t),
	)
}

func ptr[T any](v T) *T {
	return &v
}

func webEnquiry() Enquiry {
	return Enquiry{
		ID:           "enq-1",
		Title:        "Need a web developer",
		Description:  "Looking for a skilled web developer to build an e-commerce website",
		Category:     "services",
		Budget:       50000,
		Location:     "Mumbai",
		Urgency:      UrgencyNormal,
		OwnerID:      "buyer-1",
		Tags:         []string{"web-development"},
		Requirements: []string{"frontend", "backend", "database"},
	}
}

func TestSkillMatch(t *testing.T) {
	s := newTestScorer(t)
	log := logger.NewNoOpLogger()

	tests := []struct {
		name    string
		enquiry func() Enquiry
		skills  []string
		want    float64
	}{
		{
			name:    "no skills uses default",
			enquiry: webEnquiry,
			skills:  nil,
			want:    0.3,
		},
		{
			name:    "blank skills count as missing",
			enquiry: webEnquiry,
			skills:  []string{" ", ""},
			want:    0.3,
		},
		{
			name:    "category keyword and tag hits cap at one",
			enquiry: webEnquiry,
			skills:  []string{"web-development", "react"},
			want:    1.0,
		},
		{
			name: "tag hit only",
			enquiry: func() Enquiry {
				e := webEnquiry()
				e.Tags = []string{"react"}
				e.Requirements = nil
				return e
			},
			skills: []string{"react", "figma"},
			want:   0.5,
		},
		{
			name: "requirement hit only",
			enquiry: func() Enquiry {
				e := webEnquiry()
				e.Tags = nil
				return e
			},
			skills: []string{"backend", "figma"},
			want:   0.75,
		},
		{
			name:    "unrelated skill scores zero",
			enquiry: webEnquiry,
			skills:  []string{"plumbing"},
			want:    0,
		},
		{
			name:    "direct text match is case insensitive",
			enquiry: webEnquiry,
			skills:  []string{"E-Commerce", "plumbing", "welding", "roofing"},
			want:    0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.skillMatch(log, tt.enquiry(), Candidate{ID: "c", Skills: tt.skills})
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestBudgetMatch(t *testing.T) {
	s := newTestScorer(t)
	log := logger.NewNoOpLogger()

	tests := []struct {
		name   string
		budget float64
		rng    *BudgetRange
		want   float64
	}{
		{"no range", 50000, nil, 0.5},
		{"within range", 50000, &BudgetRange{Min: 30000, Max: 60000}, 1.0},
		{"on lower bound", 50000, &BudgetRange{Min: 50000, Max: 60000}, 1.0},
		{"on upper bound", 50000, &BudgetRange{Min: 10000, Max: 50000}, 1.0},
		{"within 10 percent", 50000, &BudgetRange{Min: 52000, Max: 60000}, 0.9},
		{"within 25 percent", 50000, &BudgetRange{Min: 60000, Max: 70000}, 0.7},
		{"within 50 percent", 50000, &BudgetRange{Min: 70000, Max: 90000}, 0.5},
		{"below range by 80 percent", 50000, &BudgetRange{Min: 5000, Max: 10000}, 0.3},
		{"more than 100 percent", 50000, &BudgetRange{Min: 120000, Max: 200000}, 0.1},
		{"zero enquiry budget", 0, &BudgetRange{Min: 100, Max: 200}, 0.5},
		{"negative enquiry budget", -10, &BudgetRange{Min: 100, Max: 200}, 0.5},
		{"inverted range", 50000, &BudgetRange{Min: 60000, Max: 30000}, 0.5},
		{"nan budget", math.NaN(), &BudgetRange{Min: 1, Max: 2}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.budgetMatch(log, tt.budget, tt.rng))
		})
	}
}

func TestResponseTime(t *testing.T) {
	s := newTestScorer(t)
	log := logger.NewNoOpLogger()

	tests := []struct {
		minutes *float64
		want    float64
	}{
		{nil, 0.5},
		{ptr(0.0), 1.0},
		{ptr(30.0), 1.0},
		{ptr(31.0), 0.9},
		{ptr(60.0), 0.9},
		{ptr(120.0), 0.8},
		{ptr(240.0), 0.7},
		{ptr(480.0), 0.6},
		{ptr(1440.0), 0.5},
		{ptr(1441.0), 0.3},
		{ptr(-5.0), 0.5},
		{ptr(math.Inf(1)), 0.5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, s.responseTime(log, tt.minutes), "minutes=%v", tt.minutes)
	}
}

func TestSuccessRateAndVerification(t *testing.T) {
	s := newTestScorer(t)
	log := logger.NewNoOpLogger()
	cfg := DefaultConfig()

	assert.Equal(t, 0.5, s.successRate(log, nil))
	assert.InDelta(t, 0.95, s.successRate(log, ptr(95.0)), 1e-9)
	assert.Equal(t, 0.0, s.successRate(log, ptr(0.0)))
	assert.Equal(t, 0.5, s.successRate(log, ptr(math.NaN())))

	assert.Equal(t, 1.0, s.verificationBonus(log, VerificationVerified, cfg))
	assert.Equal(t, 0.5, s.verificationBonus(log, VerificationPending, cfg))
	assert.Equal(t, 0.0, s.verificationBonus(log, VerificationUnverified, cfg))
	assert.Equal(t, 0.0, s.verificationBonus(log, VerificationStatus("gold"), cfg))

	cfg.EnableVerificationBoost = false
	assert.Equal(t, 0.0, s.verificationBonus(log, VerificationVerified, cfg))
}

func TestExperienceMatch(t *testing.T) {
	s := newTestScorer(t)
	log := logger.NewNoOpLogger()

	tests := []struct {
		name string
		c    Candidate
		want float64
	}{
		{
			name: "veteran verified high success",
			c: Candidate{
				CreatedAt:          testNow.AddDate(-2, 0, 0),
				Verification:       VerificationVerified,
				SuccessRatePercent: ptr(95.0),
			},
			want: 1.0,
		},
		{
			name: "over a year only",
			c:    Candidate{CreatedAt: testNow.AddDate(0, 0, -400), Verification: VerificationUnverified},
			want: 0.7,
		},
		{
			name: "over six months only",
			c:    Candidate{CreatedAt: testNow.AddDate(0, 0, -200), Verification: VerificationPending},
			want: 0.6,
		},
		{
			name: "new account",
			c:    Candidate{CreatedAt: testNow.AddDate(0, 0, -10)},
			want: 0.5,
		},
		{
			name: "missing creation date",
			c:    Candidate{Verification: VerificationVerified},
			want: 0.7,
		},
		{
			name: "success rate of exactly 80 earns nothing",
			c:    Candidate{CreatedAt: testNow, SuccessRatePercent: ptr(80.0)},
			want: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.experienceMatch(log, tt.c), 1e-9)
		})
	}
}

func TestScoreClampsEveryFactor(t *testing.T) {
	s := newTestScorer(t)

	candidates := []Candidate{
		{ID: "high", SuccessRatePercent: ptr(150.0), ResponseTimeMinutes: ptr(-1.0)},
		{ID: "low", SuccessRatePercent: ptr(-20.0), Budget: &BudgetRange{Min: math.Inf(-1), Max: 0}},
		{ID: "empty"},
	}

	for _, c := range candidates {
		v := s.score(webEnquiry(), c, DefaultConfig())
		for _, f := range Factors {
			assert.GreaterOrEqual(t, v.Get(f), 0.0, "%s/%s", c.ID, f)
			assert.LessOrEqual(t, v.Get(f), 1.0, "%s/%s", c.ID, f)
		}
	}

	v := s.score(webEnquiry(), candidates[0], DefaultConfig())
	assert.Equal(t, 1.0, v.SuccessRate)
	v = s.score(webEnquiry(), candidates[1], DefaultConfig())
	assert.Equal(t, 0.0, v.SuccessRate)
}

type panickyMatcher struct{}

func (panickyMatcher) Contains(string, string) bool { panic("matcher exploded") }
func (panickyMatcher) Overlaps(string, string) bool { panic("matcher exploded") }

func TestScoreRecoversFromFactorPanic(t *testing.T) {
	s := newFactorScorer(panickyMatcher{}, DefaultCategoryKeywords(),
		NewGeoResolver(DefaultRegionTable(), panickyMatcher{}), testNow, logger.NewTestLogger(t))

	c := Candidate{
		ID:           "c1",
		Skills:       []string{"react"},
		Location:     "Pune",
		Verification: VerificationVerified,
		Budget:       &BudgetRange{Min: 30000, Max: 60000},
	}

	var v FactorVector
	assert.NotPanics(t, func() {
		v = s.score(webEnquiry(), c, DefaultConfig())
	})
	assert.Equal(t, 0.0, v.SkillMatch)
	assert.Equal(t, 0.0, v.LocationMatch)
	assert.Equal(t, 1.0, v.BudgetMatch)
	assert.Equal(t, 1.0, v.VerificationBonus)
}

func TestLocationBoostDisabled(t *testing.T) {
	s := newTestScorer(t)
	cfg := DefaultConfig()
	cfg.EnableLocationBoost = false

	assert.Equal(t, 0.5, s.locationMatch("Mumbai", "Mumbai", cfg))
	assert.Equal(t, 0.5, s.locationMatch("Mumbai", "Remote", cfg))
}
