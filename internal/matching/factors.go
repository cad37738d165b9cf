package matching

import (
	"fmt"
	"math"
	"time"

	"github.com/vijay-prabhu/smartmatch/internal/logger"
)

// Defaults used when a candidate attribute is missing or malformed
const (
	defaultSkillScore = 0.3
	neutralScore      = 0.5
)

// Skill hit weights. A single skill may hit several tiers.
const (
	hitText        = 2.0
	hitCategory    = 1.5
	hitTag         = 1.0
	hitRequirement = 1.5
)

const day = 24 * time.Hour

// factorScorer computes the FactorVector of one candidate. It only reads its
// inputs, so one instance is shared by all scoring goroutines.
type factorScorer struct {
	text       TextMatcher
	categories map[string][]string
	geo        *GeoResolver
	now        time.Time
	log        logger.Logger
}

func newFactorScorer(text TextMatcher, categories map[string][]string, geo *GeoResolver, now time.Time, log logger.Logger) *factorScorer {
	normalized := make(map[string][]string, len(categories))
	for cat, keywords := range categories {
		normalized[normalize(cat)] = normalizeAll(keywords)
	}
	return &factorScorer{
		text:       text,
		categories: normalized,
		geo:        geo,
		now:        now,
		log:        log,
	}
}

// score computes all seven factors. A panic inside one factor is logged and
// that factor scores 0; the others are unaffected.
func (s *factorScorer) score(enq Enquiry, c Candidate, cfg MatchConfig) FactorVector {
	log := s.log.WithFields(map[string]interface{}{"candidateId": c.ID})

	return FactorVector{
		SkillMatch:        s.guard(log, FactorSkill, func() float64 { return s.skillMatch(log, enq, c) }),
		BudgetMatch:       s.guard(log, FactorBudget, func() float64 { return s.budgetMatch(log, enq.Budget, c.Budget) }),
		LocationMatch:     s.guard(log, FactorLocation, func() float64 { return s.locationMatch(enq.Location, c.Location, cfg) }),
		ExperienceMatch:   s.guard(log, FactorExperience, func() float64 { return s.experienceMatch(log, c) }),
		ResponseTime:      s.guard(log, FactorResponseTime, func() float64 { return s.responseTime(log, c.ResponseTimeMinutes) }),
		SuccessRate:       s.guard(log, FactorSuccessRate, func() float64 { return s.successRate(log, c.SuccessRatePercent) }),
		VerificationBonus: s.guard(log, FactorVerification, func() float64 { return s.verificationBonus(log, c.Verification, cfg) }),
	}
}

func (s *factorScorer) guard(log logger.Logger, f Factor, fn func() float64) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("factor scoring failed, using minimum", map[string]interface{}{
				"factor": string(f),
				"panic":  fmt.Sprint(r),
			})
			score = 0
		}
	}()
	return clamp01(fn())
}

func (s *factorScorer) skillMatch(log logger.Logger, enq Enquiry, c Candidate) float64 {
	skills := normalizeAll(c.Skills)
	if len(skills) == 0 {
		log.Debug("no skills listed, using default", map[string]interface{}{"factor": string(FactorSkill)})
		return defaultSkillScore
	}

	corpus := normalize(enq.Title + " " + enq.Description + " " + enq.Category)
	categoryKeywords := s.categories[normalize(enq.Category)]
	tags := normalizeAll(enq.Tags)
	requirements := normalizeAll(enq.Requirements)

	var hits float64
	for _, skill := range skills {
		if s.text.Contains(corpus, skill) {
			hits += hitText
		}
		if s.overlapsAny(skill, categoryKeywords) {
			hits += hitCategory
		}
		if s.overlapsAny(skill, tags) {
			hits += hitTag
		}
		if s.overlapsAny(skill, requirements) {
			hits += hitRequirement
		}
	}

	return math.Min(1.0, hits/float64(len(skills)))
}

func (s *factorScorer) overlapsAny(skill string, terms []string) bool {
	for _, t := range terms {
		if s.text.Overlaps(skill, t) {
			return true
		}
	}
	return false
}

func (s *factorScorer) budgetMatch(log logger.Logger, budget float64, r *BudgetRange) float64 {
	if r == nil {
		log.Debug("no budget range, using default", map[string]interface{}{"factor": string(FactorBudget)})
		return neutralScore
	}
	if !isFinite(budget) || budget <= 0 || !isFinite(r.Min) || !isFinite(r.Max) || r.Min > r.Max {
		log.Warn("malformed budget, using default", map[string]interface{}{
			"factor":   string(FactorBudget),
			"budget":   budget,
			"rangeMin": r.Min,
			"rangeMax": r.Max,
		})
		return neutralScore
	}

	if budget >= r.Min && budget <= r.Max {
		return 1.0
	}

	distance := r.Min - budget
	if budget > r.Max {
		distance = budget - r.Max
	}

	switch diff := distance / budget; {
	case diff <= 0.10:
		return 0.9
	case diff <= 0.25:
		return 0.7
	case diff <= 0.50:
		return 0.5
	case diff <= 1.00:
		return 0.3
	default:
		return 0.1
	}
}

func (s *factorScorer) locationMatch(enquiryLoc, candidateLoc string, cfg MatchConfig) float64 {
	if !cfg.EnableLocationBoost {
		return LocationMissingScore
	}
	return s.geo.Score(enquiryLoc, candidateLoc)
}

func (s *factorScorer) experienceMatch(log logger.Logger, c Candidate) float64 {
	score := 0.5

	if c.CreatedAt.IsZero() {
		log.Debug("no account creation date, skipping age bonus", map[string]interface{}{"factor": string(FactorExperience)})
	} else {
		switch age := s.now.Sub(c.CreatedAt); {
		case age > 365*day:
			score += 0.2
		case age > 180*day:
			score += 0.1
		}
	}

	if c.Verification == VerificationVerified {
		score += 0.2
	}
	if p := c.SuccessRatePercent; p != nil && *p > 80 {
		score += 0.1
	}

	return math.Min(1.0, score)
}

func (s *factorScorer) responseTime(log logger.Logger, minutes *float64) float64 {
	if minutes == nil {
		log.Debug("no response time, using default", map[string]interface{}{"factor": string(FactorResponseTime)})
		return neutralScore
	}
	m := *minutes
	if !isFinite(m) || m < 0 {
		log.Warn("malformed response time, using default", map[string]interface{}{
			"factor":  string(FactorResponseTime),
			"minutes": m,
		})
		return neutralScore
	}

	switch {
	case m <= 30:
		return 1.0
	case m <= 60:
		return 0.9
	case m <= 120:
		return 0.8
	case m <= 240:
		return 0.7
	case m <= 480:
		return 0.6
	case m <= 1440:
		return 0.5
	default:
		return 0.3
	}
}

func (s *factorScorer) successRate(log logger.Logger, percent *float64) float64 {
	if percent == nil {
		log.Debug("no success rate, using default", map[string]interface{}{"factor": string(FactorSuccessRate)})
		return neutralScore
	}
	if !isFinite(*percent) {
		log.Warn("malformed success rate, using default", map[string]interface{}{
			"factor":  string(FactorSuccessRate),
			"percent": *percent,
		})
		return neutralScore
	}
	return *percent / 100
}

func (s *factorScorer) verificationBonus(log logger.Logger, status VerificationStatus, cfg MatchConfig) float64 {
	if !cfg.EnableVerificationBoost {
		return 0
	}

	switch status {
	case VerificationVerified:
		return 1.0
	case VerificationPending:
		return 0.5
	case VerificationUnverified:
		return 0
	default:
		log.Warn("unknown verification status, treating as unverified", map[string]interface{}{
			"factor": string(FactorVerification),
			"status": string(status),
		})
		return 0
	}
}

// clamp01 bounds v to [0,1]; NaN becomes 0
func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// normalizeAll lower-cases and trims each value, dropping empties
func normalizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = normalize(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
