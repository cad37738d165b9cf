package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vijay-prabhu/smartmatch/internal/database"
	"github.com/vijay-prabhu/smartmatch/internal/service"
)

func (s *Server) registerHandlers() {
	s.handlers["find_matches"] = s.handleFindMatches
	s.handlers["list_enquiries"] = s.handleListEnquiries
	s.handlers["get_enquiry"] = s.handleGetEnquiry
	s.handlers["list_sellers"] = s.handleListSellers
	s.handlers["check_regions"] = s.handleCheckRegions
}

func decodeParams(params json.RawMessage, v interface{}) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

type findMatchesParams struct {
	EnquiryID    string `json:"enquiry_id"`
	MaxResults   *int   `json:"max_results"`
	MinimumScore *int   `json:"minimum_score"`
}

func (s *Server) handleFindMatches(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p findMatchesParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if p.EnquiryID == "" {
		return nil, fmt.Errorf("enquiry_id is required")
	}
	if p.MinimumScore != nil && (*p.MinimumScore < 0 || *p.MinimumScore > 100) {
		return nil, fmt.Errorf("minimum_score must be between 0 and 100")
	}

	report, err := s.matcher.MatchEnquiry(ctx, p.EnquiryID, service.MatchOptions{
		MaxResults:   p.MaxResults,
		MinimumScore: p.MinimumScore,
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

type listEnquiriesParams struct {
	Status   string `json:"status"`
	Category string `json:"category"`
	Location string `json:"location"`
	Limit    int    `json:"limit"`
}

func (s *Server) handleListEnquiries(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p listEnquiriesParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	opts := database.ListOptions{Limit: 20}
	if p.Limit > 0 {
		opts.Limit = p.Limit
	}

	switch p.Status {
	case "", "all":
	case string(database.EnquiryOpen), string(database.EnquiryClosed):
		status := database.EnquiryStatus(p.Status)
		opts.Status = &status
	default:
		return nil, fmt.Errorf("invalid status: %s", p.Status)
	}

	if p.Category != "" {
		opts.Category = &p.Category
	}
	if p.Location != "" {
		opts.Location = &p.Location
	}

	enquiries, err := s.store.ListEnquiries(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if enquiries == nil {
		enquiries = []database.Enquiry{}
	}

	return enquiries, nil
}

type getEnquiryParams struct {
	EnquiryID string `json:"enquiry_id"`
}

func (s *Server) handleGetEnquiry(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getEnquiryParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if p.EnquiryID == "" {
		return nil, fmt.Errorf("enquiry_id is required")
	}

	return s.store.GetEnquiry(ctx, p.EnquiryID)
}

type listSellersParams struct {
	Location string `json:"location"`
	Limit    int    `json:"limit"`
}

func (s *Server) handleListSellers(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p listSellersParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	opts := database.ListOptions{Limit: 50}
	if p.Limit > 0 {
		opts.Limit = p.Limit
	}
	if p.Location != "" {
		opts.Location = &p.Location
	}

	sellers, err := s.store.ListSellers(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if sellers == nil {
		sellers = []database.Seller{}
	}

	return sellers, nil
}

func (s *Server) handleCheckRegions(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return s.getResourceRegions()
}

// Resource handlers

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case resourceSummary:
		return s.getResourceSummary(ctx)
	case resourceEnquiries:
		return s.getResourceEnquiries(ctx)
	case resourceRegions:
		return s.getResourceRegions()
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) getResourceSummary(ctx context.Context) (string, error) {
	enquiries, sellers, err := s.store.Counts(ctx)
	if err != nil {
		return "", err
	}

	summary := fmt.Sprintf(`Marketplace Summary
===================
Enquiries: %d
Sellers:   %d
Regions:   %d
`, enquiries, sellers, len(s.regions.Regions))

	return summary, nil
}

func (s *Server) getResourceEnquiries(ctx context.Context) (string, error) {
	open := database.EnquiryOpen
	enquiries, err := s.store.ListEnquiries(ctx, database.ListOptions{Status: &open, Limit: 20})
	if err != nil {
		return "", err
	}

	if len(enquiries) == 0 {
		return "No open enquiries.", nil
	}

	var sb strings.Builder
	sb.WriteString("Open Enquiries\n==============\n\n")
	for _, e := range enquiries {
		sb.WriteString(fmt.Sprintf("• %s [%s]\n", e.Title, e.ID))
		sb.WriteString(fmt.Sprintf("  %s, budget %.0f, %s, urgency %s\n", orDash(e.Category), e.Budget, orDash(e.Location), e.Urgency))
		if len(e.Tags) > 0 {
			sb.WriteString(fmt.Sprintf("  tags: %s\n", strings.Join(e.Tags, ", ")))
		}
	}

	return sb.String(), nil
}

func (s *Server) getResourceRegions() (string, error) {
	issues := s.regions.Asymmetries()
	if len(issues) == 0 {
		return "Region table is consistent.", nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Region Data Check: %d issue(s)\n\n", len(issues)))
	for _, issue := range issues {
		sb.WriteString(fmt.Sprintf("• [%s] %s\n", issue.Kind, issue))
	}
	sb.WriteString("\nAdjacency edges are matched in both directions regardless.\n")

	return sb.String(), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
