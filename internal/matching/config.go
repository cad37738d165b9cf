package matching

// Weights is the importance of each factor in the composite score.
// They are intended to sum to 1.0; the engine warns but does not renormalize.
type Weights struct {
	SkillMatch        float64 `json:"skillMatch" toml:"skill_match"`
	BudgetMatch       float64 `json:"budgetMatch" toml:"budget_match"`
	LocationMatch     float64 `json:"locationMatch" toml:"location_match"`
	ExperienceMatch   float64 `json:"experienceMatch" toml:"experience_match"`
	ResponseTime      float64 `json:"responseTime" toml:"response_time"`
	SuccessRate       float64 `json:"successRate" toml:"success_rate"`
	VerificationBonus float64 `json:"verificationBonus" toml:"verification_bonus"`
}

// Get returns the weight of the named factor
func (w Weights) Get(f Factor) float64 {
	switch f {
	case FactorSkill:
		return w.SkillMatch
	case FactorBudget:
		return w.BudgetMatch
	case FactorLocation:
		return w.LocationMatch
	case FactorExperience:
		return w.ExperienceMatch
	case FactorResponseTime:
		return w.ResponseTime
	case FactorSuccessRate:
		return w.SuccessRate
	case FactorVerification:
		return w.VerificationBonus
	default:
		return 0
	}
}

// Sum returns the total of all weights
func (w Weights) Sum() float64 {
	var sum float64
	for _, f := range Factors {
		sum += w.Get(f)
	}
	return sum
}

// Thresholds are composite-score cut-offs on the 0-100 scale
type Thresholds struct {
	Minimum   int `json:"minimumScore"`
	High      int `json:"highMatchScore"`
	Excellent int `json:"excellentMatchScore"`
}

// MatchConfig is the fully resolved configuration for one FindMatches call
type MatchConfig struct {
	Weights                 Weights    `json:"weights"`
	Thresholds              Thresholds `json:"thresholds"`
	MaxResults              int        `json:"maxResults"`
	EnableLocationBoost     bool       `json:"enableLocationBoost"`
	EnableVerificationBoost bool       `json:"enableVerificationBoost"`
}

// DefaultConfig returns a fresh copy of the documented defaults
func DefaultConfig() MatchConfig {
	return MatchConfig{
		Weights: Weights{
			SkillMatch:        0.25,
			BudgetMatch:       0.20,
			LocationMatch:     0.15,
			ExperienceMatch:   0.15,
			ResponseTime:      0.10,
			SuccessRate:       0.10,
			VerificationBonus: 0.05,
		},
		Thresholds: Thresholds{
			Minimum:   30,
			High:      70,
			Excellent: 85,
		},
		MaxResults:              10,
		EnableLocationBoost:     true,
		EnableVerificationBoost: true,
	}
}

// WeightOverrides replaces individual weights; nil fields keep the default
type WeightOverrides struct {
	SkillMatch        *float64 `json:"skillMatch,omitempty"`
	BudgetMatch       *float64 `json:"budgetMatch,omitempty"`
	LocationMatch     *float64 `json:"locationMatch,omitempty"`
	ExperienceMatch   *float64 `json:"experienceMatch,omitempty"`
	ResponseTime      *float64 `json:"responseTime,omitempty"`
	SuccessRate       *float64 `json:"successRate,omitempty"`
	VerificationBonus *float64 `json:"verificationBonus,omitempty"`
}

// Overrides is a partial MatchConfig supplied by the caller
type Overrides struct {
	Weights                 *WeightOverrides `json:"weights,omitempty"`
	MinimumScore            *int             `json:"minimumScore,omitempty"`
	HighMatchScore          *int             `json:"highMatchScore,omitempty"`
	ExcellentMatchScore     *int             `json:"excellentMatchScore,omitempty"`
	MaxResults              *int             `json:"maxResults,omitempty"`
	EnableLocationBoost     *bool            `json:"enableLocationBoost,omitempty"`
	EnableVerificationBoost *bool            `json:"enableVerificationBoost,omitempty"`
}

// Resolve merges overrides onto DefaultConfig. A nil receiver yields the defaults.
func (o *Overrides) Resolve() MatchConfig {
	cfg := DefaultConfig()
	if o == nil {
		return cfg
	}

	if w := o.Weights; w != nil {
		setFloat(&cfg.Weights.SkillMatch, w.SkillMatch)
		setFloat(&cfg.Weights.BudgetMatch, w.BudgetMatch)
		setFloat(&cfg.Weights.LocationMatch, w.LocationMatch)
		setFloat(&cfg.Weights.ExperienceMatch, w.ExperienceMatch)
		setFloat(&cfg.Weights.ResponseTime, w.ResponseTime)
		setFloat(&cfg.Weights.SuccessRate, w.SuccessRate)
		setFloat(&cfg.Weights.VerificationBonus, w.VerificationBonus)
	}

	setInt(&cfg.Thresholds.Minimum, o.MinimumScore)
	setInt(&cfg.Thresholds.High, o.HighMatchScore)
	setInt(&cfg.Thresholds.Excellent, o.ExcellentMatchScore)
	setInt(&cfg.MaxResults, o.MaxResults)

	if o.EnableLocationBoost != nil {
		cfg.EnableLocationBoost = *o.EnableLocationBoost
	}
	if o.EnableVerificationBoost != nil {
		cfg.EnableVerificationBoost = *o.EnableVerificationBoost
	}

	return cfg
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
