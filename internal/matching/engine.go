package matching

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vijay-prabhu/smartmatch/internal/logger"
)

// Engine runs the scoring pipeline:
//
//	factor scoring (fan-out) → aggregate → threshold filter → rank → explain
//
// An Engine holds only immutable lookup data, so one instance may serve
// concurrent FindMatches calls.
type Engine struct {
	log        logger.Logger
	text       TextMatcher
	table      RegionTable
	geo        *GeoResolver
	categories map[string][]string
	workers    int
	now        func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithTextMatcher replaces the substring matcher used for skills and locations
func WithTextMatcher(m TextMatcher) Option {
	return func(e *Engine) {
		if m != nil {
			e.text = m
		}
	}
}

// WithRegionTable replaces the built-in region data
func WithRegionTable(t RegionTable) Option {
	return func(e *Engine) {
		e.table = t
	}
}

// WithCategoryKeywords replaces the built-in category keyword table
func WithCategoryKeywords(c map[string][]string) Option {
	return func(e *Engine) {
		if c != nil {
			e.categories = c
		}
	}
}

// WithWorkers bounds the number of candidates scored in parallel
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithClock sets the time source used for account age
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an Engine with the built-in tables unless overridden
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		log:        logger.NewNoOpLogger(),
		text:       SubstringMatcher{},
		table:      DefaultRegionTable(),
		categories: DefaultCategoryKeywords(),
		workers:    runtime.GOMAXPROCS(0),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.geo = NewGeoResolver(e.table, e.text)

	if issues := e.table.Asymmetries(); len(issues) > 0 {
		e.log.Info("region table has adjacency issues; run 'smartmatch regions check' for details", map[string]interface{}{
			"issues": len(issues),
		})
		for _, issue := range issues {
			e.log.Debug("region table issue", map[string]interface{}{
				"kind": string(issue.Kind),
				"from": issue.From,
				"to":   issue.To,
			})
		}
	}

	return e
}

// RegionTable returns the region data the engine was built with
func (e *Engine) RegionTable() RegionTable {
	return e.table
}

// FindMatches scores candidates against enq and returns the ranked matches.
// It never fails: bad candidate data falls back to per-factor defaults and
// the worst outcome is an empty slice. If ctx is cancelled, candidates not yet
// scored are left out and the rest are ranked as usual.
func (e *Engine) FindMatches(ctx context.Context, enq Enquiry, candidates []Candidate, overrides *Overrides) (results []MatchResult) {
	results = []MatchResult{}
	log := e.log.WithFields(map[string]interface{}{"enquiryId": enq.ID})

	defer func() {
		if r := recover(); r != nil {
			log.Error("matching failed", map[string]interface{}{"panic": fmt.Sprint(r)})
			results = []MatchResult{}
		}
	}()

	cfg := e.resolveConfig(log, overrides)
	pool := excludeOwner(enq, candidates)
	scorer := newFactorScorer(e.text, e.categories, e.geo, e.now(), log)

	all := e.scoreAll(ctx, log, scorer, enq, pool, cfg)
	kept := filterByThreshold(all, cfg.Thresholds.Minimum)
	ranked := rank(kept, cfg.MaxResults)
	results = explain(ranked, cfg.Thresholds)

	log.Info("matching complete", map[string]interface{}{
		"candidates": len(candidates),
		"scored":     len(all),
		"qualified":  len(kept),
		"returned":   len(results),
	})
	return results
}

// FindMatches runs a default Engine without cancellation
func FindMatches(enq Enquiry, candidates []Candidate, overrides *Overrides) []MatchResult {
	return NewEngine().FindMatches(context.Background(), enq, candidates, overrides)
}

func (e *Engine) resolveConfig(log logger.Logger, overrides *Overrides) MatchConfig {
	cfg := overrides.Resolve()

	if err := CheckWeights(cfg.Weights); err != nil {
		log.WithError(err).Warn("weights are not normalized, scoring with them unmodified", map[string]interface{}{
			"sum": cfg.Weights.Sum(),
		})
	}

	if cfg.MaxResults < 1 {
		def := DefaultConfig().MaxResults
		log.Warn("max results must be positive, using default", map[string]interface{}{
			"maxResults": cfg.MaxResults,
			"default":    def,
		})
		cfg.MaxResults = def
	}

	return cfg
}

// excludeOwner drops candidates that are the enquiry's own author
func excludeOwner(enq Enquiry, candidates []Candidate) []Candidate {
	pool := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == enq.OwnerID {
			continue
		}
		pool = append(pool, c)
	}
	return pool
}

// scoreAll scores every candidate in parallel. Each goroutine writes only its
// own slot; the result keeps input order.
func (e *Engine) scoreAll(ctx context.Context, log logger.Logger, scorer *factorScorer, enq Enquiry, pool []Candidate, cfg MatchConfig) []scored {
	slots := make([]*scored, len(pool))

	var g errgroup.Group
	g.SetLimit(e.workers)

	for i := range pool {
		if ctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			slots[i] = scoreOne(log, scorer, enq, pool[i], cfg)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]scored, 0, len(pool))
	for _, s := range slots {
		if s != nil {
			out = append(out, *s)
		}
	}

	if skipped := len(pool) - len(out); skipped > 0 {
		log.Warn("matching cancelled before all candidates were scored", map[string]interface{}{
			"skipped": skipped,
			"error":   fmt.Sprint(ctx.Err()),
		})
	}
	return out
}

// scoreOne scores a single candidate. A fault outside the per-factor guards
// leaves the candidate with an all-zero vector rather than dropping it.
func scoreOne(log logger.Logger, scorer *factorScorer, enq Enquiry, c Candidate, cfg MatchConfig) (s *scored) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("candidate scoring failed, using minimum scores", map[string]interface{}{
				"candidateId": c.ID,
				"panic":       fmt.Sprint(r),
			})
			s = &scored{candidate: c}
		}
	}()

	f := scorer.score(enq, c, cfg)
	return &scored{
		candidate: c,
		factors:   f,
		score:     Aggregate(f, cfg.Weights),
	}
}

// explain turns ranked entries into fresh MatchResults
func explain(ranked []scored, t Thresholds) []MatchResult {
	results := make([]MatchResult, 0, len(ranked))
	for _, s := range ranked {
		results = append(results, MatchResult{
			CandidateID:     s.candidate.ID,
			CandidateName:   s.candidate.Name,
			Score:           s.score,
			Quality:         Quality(s.score, t),
			Factors:         s.factors,
			Reasons:         Reasons(s.factors),
			Recommendations: Recommendations(s.factors),
		})
	}
	return results
}
