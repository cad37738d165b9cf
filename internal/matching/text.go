package matching

import "strings"

// TextMatcher decides whether two pieces of free text refer to the same thing.
// Inputs are already lower-cased and trimmed by the caller.
type TextMatcher interface {
	// Contains reports whether needle occurs in haystack
	Contains(haystack, needle string) bool

	// Overlaps reports whether either string occurs in the other
	Overlaps(a, b string) bool
}

// SubstringMatcher matches plain substrings. This is the default.
type SubstringMatcher struct{}

func (SubstringMatcher) Contains(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(haystack, needle)
}

func (m SubstringMatcher) Overlaps(a, b string) bool {
	return m.Contains(a, b) || m.Contains(b, a)
}

// WordMatcher only matches on word boundaries, so "art" does not match "smart".
// Multi-word needles fall back to plain substring matching.
type WordMatcher struct{}

func (WordMatcher) Contains(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return containsWord(haystack, needle)
}

func (m WordMatcher) Overlaps(a, b string) bool {
	return m.Contains(a, b) || m.Contains(b, a)
}

// NewTextMatcher returns the matcher registered under name, or the
// substring matcher when the name is unknown
func NewTextMatcher(name string) TextMatcher {
	switch strings.ToLower(name) {
	case "word":
		return WordMatcher{}
	default:
		return SubstringMatcher{}
	}
}

// containsWord checks if text contains the word (with word boundary awareness)
func containsWord(text, word string) bool {
	if strings.Contains(word, " ") {
		return strings.Contains(text, word)
	}

	idx := strings.Index(text, word)
	if idx == -1 {
		return false
	}

	if idx > 0 && isWordChar(text[idx-1]) {
		return containsWord(text[idx+len(word):], word)
	}

	endIdx := idx + len(word)
	if endIdx < len(text) && isWordChar(text[endIdx]) {
		return containsWord(text[idx+len(word):], word)
	}

	return true
}

// isWordChar returns true for alphanumeric characters
func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// normalize lower-cases and trims s
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DefaultCategoryKeywords returns the built-in category to skill keyword table
func DefaultCategoryKeywords() map[string][]string {
	return map[string][]string{
		"services":             {"consulting", "design", "development", "marketing", "writing", "translation", "tutoring", "cleaning", "repair", "maintenance"},
		"jobs":                 {"programming", "design", "marketing", "sales", "customer-service", "management", "teaching", "healthcare", "finance", "legal"},
		"real-estate":          {"property-management", "brokerage", "valuation", "legal", "construction", "interior-design", "maintenance", "cleaning"},
		"electronics":          {"repair", "maintenance", "installation", "programming", "networking", "security", "automation"},
		"fashion":              {"design", "tailoring", "styling", "photography", "modeling", "marketing", "ecommerce"},
		"health-beauty":        {"fitness", "nutrition", "beauty", "wellness", "therapy", "counseling", "medical"},
		"events-entertainment": {"planning", "catering", "photography", "music", "decoration", "coordination", "marketing"},
		"automobile":           {"repair", "maintenance", "sales", "insurance", "financing", "detailing", "towing"},
		"home-furniture":       {"carpentry", "design", "assembly", "repair", "upholstery", "painting", "cleaning"},
		"agriculture-farming":  {"farming", "gardening", "irrigation", "pest-control", "harvesting", "equipment", "consulting"},
	}
}
