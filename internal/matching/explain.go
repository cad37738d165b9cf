package matching

// Factor values above strongAbove earn a reason, above softAbove a softer one,
// and below recommendBelow a recommendation
const (
	strongAbove    = 0.8
	softAbove      = 0.6
	recommendBelow = 0.5
)

type reasonText struct {
	strong string
	soft   string // empty when the factor has no soft variant
}

var reasonTexts = map[Factor]reasonText{
	FactorSkill: {
		strong: "Excellent skill match for your requirements",
		soft:   "Good skill alignment with your needs",
	},
	FactorBudget: {
		strong: "Budget perfectly matches your requirements",
		soft:   "Budget is within your range",
	},
	FactorLocation: {
		strong: "Located in the same area for easy coordination",
		soft:   "Convenient location for your project",
	},
	FactorExperience: {
		strong: "Highly experienced in this field",
		soft:   "Good experience level for your project",
	},
	FactorResponseTime: {
		strong: "Quick response time for better communication",
	},
	FactorSuccessRate: {
		strong: "High success rate with previous clients",
	},
	FactorVerification: {
		strong: "Verified profile for added trust",
	},
}

// recommendationOrder lists the factors that can produce a recommendation
var recommendationOrder = []Factor{
	FactorSkill,
	FactorBudget,
	FactorLocation,
	FactorResponseTime,
	FactorVerification,
}

var recommendationTexts = map[Factor]string{
	FactorSkill:        "Consider asking about specific skills needed for your project",
	FactorBudget:       "Discuss budget flexibility to find common ground",
	FactorLocation:     "Consider remote work options if location is a concern",
	FactorResponseTime: "Set clear communication expectations and timelines",
	FactorVerification: "Request additional verification or references",
}

// Reasons explains why a match is good, in factor priority order
func Reasons(f FactorVector) []string {
	reasons := []string{}
	for _, factor := range Factors {
		text := reasonTexts[factor]
		switch v := f.Get(factor); {
		case v > strongAbove:
			reasons = append(reasons, text.strong)
		case v > softAbove && text.soft != "":
			reasons = append(reasons, text.soft)
		}
	}
	return reasons
}

// Recommendations lists what the buyer should clarify, in factor priority order
func Recommendations(f FactorVector) []string {
	recs := []string{}
	for _, factor := range recommendationOrder {
		if f.Get(factor) < recommendBelow {
			recs = append(recs, recommendationTexts[factor])
		}
	}
	return recs
}

// QualityLabel is a coarse bucket for a composite score
type QualityLabel string

const (
	QualityExcellent QualityLabel = "excellent"
	QualityGreat     QualityLabel = "great"
	QualityGood      QualityLabel = "good"
	QualityFair      QualityLabel = "fair"
)

// goodMatchScore is the floor of the "good" bucket
const goodMatchScore = 50

// Quality buckets score using the configured high and excellent thresholds
func Quality(score int, t Thresholds) QualityLabel {
	switch {
	case score >= t.Excellent:
		return QualityExcellent
	case score >= t.High:
		return QualityGreat
	case score >= goodMatchScore:
		return QualityGood
	default:
		return QualityFair
	}
}

// Label returns the display name of the bucket
func (q QualityLabel) Label() string {
	switch q {
	case QualityExcellent:
		return "Excellent Match"
	case QualityGreat:
		return "Great Match"
	case QualityGood:
		return "Good Match"
	default:
		return "Fair Match"
	}
}

// Description returns a one-line explanation of the bucket
func (q QualityLabel) Description() string {
	switch q {
	case QualityExcellent:
		return "Perfect alignment with your requirements"
	case QualityGreat:
		return "Strong compatibility for your project"
	case QualityGood:
		return "Good potential for collaboration"
	default:
		return "Some compatibility, worth considering"
	}
}
