// Package service ties the store, the result cache and the matching engine
// together for the CLI and the MCP server.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vijay-prabhu/smartmatch/internal/cache"
	"github.com/vijay-prabhu/smartmatch/internal/database"
	"github.com/vijay-prabhu/smartmatch/internal/logger"
	"github.com/vijay-prabhu/smartmatch/internal/matching"
)

// ErrEnquiryClosed is returned when matching is requested for a closed enquiry
var ErrEnquiryClosed = errors.New("enquiry is closed")

// Store is the subset of the database the service needs
type Store interface {
	GetEnquiry(ctx context.Context, id string) (*database.Enquiry, error)
	Candidates(ctx context.Context) ([]matching.Candidate, error)
	SaveMatchRun(ctx context.Context, run *database.MatchRun) error
}

// Service runs matching for stored enquiries
type Service struct {
	store       Store
	engine      *matching.Engine
	overrides   *matching.Overrides
	cache       cache.Cache
	fingerprint string
	log         logger.Logger
}

// Option configures a Service
type Option func(*Service)

// WithCache enables result caching. fingerprint identifies the engine
// settings so a change of tables invalidates old entries.
func WithCache(c cache.Cache, fingerprint string) Option {
	return func(s *Service) {
		s.cache = c
		s.fingerprint = fingerprint
	}
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a Service. overrides are the configured defaults for every call
// and may be nil.
func New(store Store, engine *matching.Engine, overrides *matching.Overrides, opts ...Option) *Service {
	s := &Service{
		store:     store,
		engine:    engine,
		overrides: overrides,
		log:       logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MatchOptions adjusts a single MatchEnquiry call
type MatchOptions struct {
	MaxResults   *int
	MinimumScore *int
	NoCache      bool
}

// Report is the outcome of MatchEnquiry
type Report struct {
	Enquiry        *database.Enquiry      `json:"enquiry"`
	Results        []matching.MatchResult `json:"results"`
	CandidateCount int                    `json:"candidate_count"`
	Cached         bool                   `json:"cached"`
	Partial        bool                   `json:"partial,omitempty"`
	RunID          string                 `json:"run_id,omitempty"`
}

// MatchEnquiry scores every stored seller against the enquiry, records the
// run and returns the ranked matches. A cancelled ctx yields the partial
// ranking, which is neither cached nor recorded.
func (s *Service) MatchEnquiry(ctx context.Context, enquiryID string, opts MatchOptions) (*Report, error) {
	log := s.log.WithFields(map[string]interface{}{"enquiryId": enquiryID})

	row, err := s.store.GetEnquiry(ctx, enquiryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load enquiry: %w", err)
	}
	if row.Status == database.EnquiryClosed {
		return nil, fmt.Errorf("%w: %s", ErrEnquiryClosed, enquiryID)
	}

	candidates, err := s.store.Candidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sellers: %w", err)
	}

	enq := row.ToEnquiry()
	overrides := s.callOverrides(opts)
	report := &Report{
		Enquiry:        row,
		CandidateCount: len(candidates),
	}

	key := ""
	if s.cache != nil && !opts.NoCache {
		key, err = cache.Key(enq, candidates, overrides.Resolve(), s.fingerprint)
		if err != nil {
			log.WithError(err).Warn("cannot derive cache key, skipping cache", nil)
			key = ""
		}
	}

	if key != "" {
		results, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			log.WithError(err).Warn("cache lookup failed, recomputing", nil)
		case ok:
			log.Debug("cache hit", map[string]interface{}{"results": len(results)})
			report.Results = results
			report.Cached = true
		}
	}

	if !report.Cached {
		report.Results = s.engine.FindMatches(ctx, enq, candidates, overrides)

		if ctx.Err() != nil {
			report.Partial = true
			log.Warn("matching interrupted, returning partial results", map[string]interface{}{
				"results": len(report.Results),
			})
			return report, nil
		}

		if key != "" {
			if err := s.cache.Set(ctx, key, report.Results); err != nil {
				log.WithError(err).Warn("cache store failed", nil)
			}
		}
	}

	run := &database.MatchRun{
		EnquiryID:      enquiryID,
		CandidateCount: len(candidates),
		Results:        report.Results,
		Cached:         report.Cached,
	}
	if err := s.store.SaveMatchRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to record match run: %w", err)
	}
	report.RunID = run.ID

	log.Info("enquiry matched", map[string]interface{}{
		"candidates": len(candidates),
		"results":    len(report.Results),
		"cached":     report.Cached,
		"runId":      run.ID,
	})
	return report, nil
}

// callOverrides layers per-call options over the configured overrides
func (s *Service) callOverrides(opts MatchOptions) *matching.Overrides {
	var ov matching.Overrides
	if s.overrides != nil {
		ov = *s.overrides
	}
	if opts.MaxResults != nil {
		ov.MaxResults = opts.MaxResults
	}
	if opts.MinimumScore != nil {
		ov.MinimumScore = opts.MinimumScore
	}
	return &ov
}
