package database

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/vijay-prabhu/smartmatch/internal/matching"
)

// EnquiryStatus represents whether an enquiry is still looking for sellers
type EnquiryStatus string

const (
	EnquiryOpen   EnquiryStatus = "open"
	EnquiryClosed EnquiryStatus = "closed"
)

// Enquiry is a stored buyer request
type Enquiry struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Category     string           `json:"category"`
	Budget       float64          `json:"budget"`
	Location     string           `json:"location"`
	Urgency      matching.Urgency `json:"urgency"`
	OwnerID      string           `json:"owner_id"`
	Tags         []string         `json:"tags"`
	Requirements []string         `json:"requirements"`
	Timeline     *string          `json:"timeline,omitempty"`
	Status       EnquiryStatus    `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ToEnquiry converts the row into the engine's input type
func (e *Enquiry) ToEnquiry() matching.Enquiry {
	return matching.Enquiry{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		Category:     e.Category,
		Budget:       e.Budget,
		Location:     e.Location,
		Urgency:      e.Urgency,
		OwnerID:      e.OwnerID,
		Tags:         e.Tags,
		Requirements: e.Requirements,
		Timeline:     e.Timeline,
	}
}

// Seller is a stored seller profile
type Seller struct {
	ID                  string                      `json:"id"`
	Name                string                      `json:"name"`
	Location            string                      `json:"location"`
	Skills              []string                    `json:"skills"`
	BudgetMin           *float64                    `json:"budget_min,omitempty"`
	BudgetMax           *float64                    `json:"budget_max,omitempty"`
	Rating              *float64                    `json:"rating,omitempty"`
	ResponseTimeMinutes *float64                    `json:"response_time_minutes,omitempty"`
	SuccessRatePercent  *float64                    `json:"success_rate_percent,omitempty"`
	Verification        matching.VerificationStatus `json:"verification_status"`
	CreatedAt           time.Time                   `json:"created_at"`
	UpdatedAt           time.Time                   `json:"updated_at"`
}

// ToCandidate converts the row into the engine's input type. The budget
// range is only set when both bounds are stored.
func (s *Seller) ToCandidate() matching.Candidate {
	c := matching.Candidate{
		ID:                  s.ID,
		Name:                s.Name,
		Location:            s.Location,
		Skills:              s.Skills,
		Rating:              s.Rating,
		ResponseTimeMinutes: s.ResponseTimeMinutes,
		SuccessRatePercent:  s.SuccessRatePercent,
		Verification:        s.Verification,
		CreatedAt:           s.CreatedAt,
	}
	if s.BudgetMin != nil && s.BudgetMax != nil {
		c.Budget = &matching.BudgetRange{Min: *s.BudgetMin, Max: *s.BudgetMax}
	}
	return c
}

// MatchRun is the persisted outcome of one matching call
type MatchRun struct {
	ID             string                 `json:"id"`
	EnquiryID      string                 `json:"enquiry_id"`
	CandidateCount int                    `json:"candidate_count"`
	ResultCount    int                    `json:"result_count"`
	Results        []matching.MatchResult `json:"results"`
	Cached         bool                   `json:"cached"`
	CreatedAt      time.Time              `json:"created_at"`
}

// ListOptions contains options for listing enquiries and sellers.
// Fields that do not apply to the listed table are ignored.
type ListOptions struct {
	Status   *EnquiryStatus
	Category *string
	Location *string
	Limit    int
	Offset   int
}

// Dataset is the document accepted by Import
type Dataset struct {
	Enquiries []Enquiry `json:"enquiries"`
	Sellers   []Seller  `json:"sellers"`
}

// NullString is a helper to convert *string to sql.NullString
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// NullFloat64 is a helper to convert *float64 to sql.NullFloat64
func NullFloat64(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// StringPtr converts sql.NullString to *string
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// Float64Ptr converts sql.NullFloat64 to *float64
func Float64Ptr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	return &nf.Float64
}

// encodeStrings stores a string set as a JSON array
func encodeStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(values)
	return string(data)
}

// decodeStrings reads a JSON array column; malformed data yields an empty set
func decodeStrings(data string) []string {
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil || values == nil {
		return []string{}
	}
	return values
}
