// Package matching scores a pool of sellers against a buyer's enquiry and
// returns a ranked, explained list of matches.
//
// The engine is a pure computation over in-memory values. Fetching the
// enquiry and the candidate pool, and persisting or displaying the results,
// belong to the caller.
package matching

import "time"

// Urgency is how quickly the buyer needs the enquiry fulfilled
type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyNormal    Urgency = "normal"
	UrgencyHigh      Urgency = "high"
	UrgencyEmergency Urgency = "emergency"
)

// VerificationStatus is a seller's identity-check state
type VerificationStatus string

const (
	VerificationVerified   VerificationStatus = "verified"
	VerificationPending    VerificationStatus = "pending"
	VerificationUnverified VerificationStatus = "unverified"
)

// Enquiry is a buyer's request. The engine never mutates it.
type Enquiry struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Budget       float64  `json:"budget"`
	Location     string   `json:"location"`
	Urgency      Urgency  `json:"urgency"`
	OwnerID      string   `json:"owner_id"`
	Tags         []string `json:"tags,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
	Timeline     *string  `json:"timeline,omitempty"`
}

// BudgetRange is the price band a seller works in
type BudgetRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Candidate is a seller considered for an enquiry. Optional attributes are
// pointers (or a nil slice) so that "missing" is distinguishable from zero.
type Candidate struct {
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	Location            string             `json:"location"`
	Skills              []string           `json:"skills,omitempty"`
	Budget              *BudgetRange       `json:"budget,omitempty"`
	Rating              *float64           `json:"rating,omitempty"`
	ResponseTimeMinutes *float64           `json:"response_time_minutes,omitempty"`
	SuccessRatePercent  *float64           `json:"success_rate_percent,omitempty"`
	Verification        VerificationStatus `json:"verification_status"`
	CreatedAt           time.Time          `json:"created_at"`
}

// Factor names one of the seven sub-scores
type Factor string

const (
	FactorSkill        Factor = "skillMatch"
	FactorBudget       Factor = "budgetMatch"
	FactorLocation     Factor = "locationMatch"
	FactorExperience   Factor = "experienceMatch"
	FactorResponseTime Factor = "responseTime"
	FactorSuccessRate  Factor = "successRate"
	FactorVerification Factor = "verificationBonus"
)

// Factors lists every factor in priority order. Explanations follow this order.
var Factors = []Factor{
	FactorSkill,
	FactorBudget,
	FactorLocation,
	FactorExperience,
	FactorResponseTime,
	FactorSuccessRate,
	FactorVerification,
}

// FactorVector holds the seven normalized sub-scores of one candidate.
// Every value is in [0,1].
type FactorVector struct {
	SkillMatch        float64 `json:"skillMatch"`
	BudgetMatch       float64 `json:"budgetMatch"`
	LocationMatch     float64 `json:"locationMatch"`
	ExperienceMatch   float64 `json:"experienceMatch"`
	ResponseTime      float64 `json:"responseTime"`
	SuccessRate       float64 `json:"successRate"`
	VerificationBonus float64 `json:"verificationBonus"`
}

// Get returns the value of the named factor
func (v FactorVector) Get(f Factor) float64 {
	switch f {
	case FactorSkill:
		return v.SkillMatch
	case FactorBudget:
		return v.BudgetMatch
	case FactorLocation:
		return v.LocationMatch
	case FactorExperience:
		return v.ExperienceMatch
	case FactorResponseTime:
		return v.ResponseTime
	case FactorSuccessRate:
		return v.SuccessRate
	case FactorVerification:
		return v.VerificationBonus
	default:
		return 0
	}
}

// MatchResult is one ranked, explained match
type MatchResult struct {
	CandidateID     string       `json:"candidate_id"`
	CandidateName   string       `json:"candidate_name"`
	Score           int          `json:"score"`
	Quality         QualityLabel `json:"quality"`
	Factors         FactorVector `json:"factors"`
	Reasons         []string     `json:"reasons"`
	Recommendations []string     `json:"recommendations"`
}
