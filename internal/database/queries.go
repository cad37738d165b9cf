package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vijay-prabhu/smartmatch/internal/matching"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

const enquiryColumns = `
	id, title, description, category, budget, location, urgency, owner_id,
	tags, requirements, timeline, status, created_at, updated_at`

const sellerColumns = `
	id, name, location, skills, budget_min, budget_max, rating,
	response_time_minutes, success_rate_percent, verification_status, created_at, updated_at`

// CreateEnquiry inserts a new enquiry
func (db *DB) CreateEnquiry(ctx context.Context, e *Enquiry) error {
	return saveEnquiry(ctx, db, e, false)
}

func saveEnquiry(ctx context.Context, ex execer, e *Enquiry, upsert bool) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Urgency == "" {
		e.Urgency = matching.UrgencyNormal
	}
	if e.Status == "" {
		e.Status = EnquiryOpen
	}
	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now

	query := `INSERT INTO enquiries (` + enquiryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if upsert {
		query += ` ON CONFLICT(id) DO UPDATE SET
			title = excluded.title, description = excluded.description, category = excluded.category,
			budget = excluded.budget, location = excluded.location, urgency = excluded.urgency,
			owner_id = excluded.owner_id, tags = excluded.tags, requirements = excluded.requirements,
			timeline = excluded.timeline, status = excluded.status, updated_at = excluded.updated_at`
	}

	_, err := ex.ExecContext(ctx, query,
		e.ID, e.Title, e.Description, e.Category, e.Budget, e.Location, e.Urgency, e.OwnerID,
		encodeStrings(e.Tags), encodeStrings(e.Requirements), NullString(e.Timeline), e.Status,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save enquiry %s: %w", e.ID, err)
	}
	return nil
}

func scanEnquiry(row rowScanner) (*Enquiry, error) {
	e := &Enquiry{}
	var tags, requirements string
	var timeline sql.NullString

	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Category, &e.Budget, &e.Location, &e.Urgency, &e.OwnerID,
		&tags, &requirements, &timeline, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Tags = decodeStrings(tags)
	e.Requirements = decodeStrings(requirements)
	e.Timeline = StringPtr(timeline)
	return e, nil
}

// GetEnquiry retrieves an enquiry by ID
func (db *DB) GetEnquiry(ctx context.Context, id string) (*Enquiry, error) {
	row := db.QueryRowContext(ctx, `SELECT `+enquiryColumns+` FROM enquiries WHERE id = ?`, id)

	e, err := scanEnquiry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("enquiry %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListEnquiries retrieves enquiries, newest first
func (db *DB) ListEnquiries(ctx context.Context, opts ListOptions) ([]Enquiry, error) {
	query := `SELECT ` + enquiryColumns + ` FROM enquiries WHERE 1=1`
	args := []interface{}{}

	if opts.Status != nil {
		query += " AND status = ?"
		args = append(args, *opts.Status)
	}
	if opts.Category != nil {
		query += " AND LOWER(category) = LOWER(?)"
		args = append(args, *opts.Category)
	}
	if opts.Location != nil {
		query += " AND LOWER(location) LIKE LOWER(?)"
		args = append(args, "%"+*opts.Location+"%")
	}

	query += " ORDER BY created_at DESC, id" + limitClause(opts)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enquiries []Enquiry
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, err
		}
		enquiries = append(enquiries, *e)
	}
	return enquiries, rows.Err()
}

// UpdateEnquiryStatus opens or closes an enquiry
func (db *DB) UpdateEnquiryStatus(ctx context.Context, id string, status EnquiryStatus) error {
	result, err := db.ExecContext(ctx, `
		UPDATE enquiries SET status = ?, updated_at = ? WHERE id = ?
	`, status, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("enquiry %s: %w", id, ErrNotFound)
	}
	return nil
}

// CreateSeller inserts a new seller profile
func (db *DB) CreateSeller(ctx context.Context, s *Seller) error {
	return saveSeller(ctx, db, s, false)
}

func saveSeller(ctx context.Context, ex execer, s *Seller, upsert bool) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.Verification == "" {
		s.Verification = matching.VerificationUnverified
	}
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	query := `INSERT INTO sellers (` + sellerColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if upsert {
		query += ` ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, location = excluded.location, skills = excluded.skills,
			budget_min = excluded.budget_min, budget_max = excluded.budget_max, rating = excluded.rating,
			response_time_minutes = excluded.response_time_minutes,
			success_rate_percent = excluded.success_rate_percent,
			verification_status = excluded.verification_status, updated_at = excluded.updated_at`
	}

	_, err := ex.ExecContext(ctx, query,
		s.ID, s.Name, s.Location, encodeStrings(s.Skills),
		NullFloat64(s.BudgetMin), NullFloat64(s.BudgetMax), NullFloat64(s.Rating),
		NullFloat64(s.ResponseTimeMinutes), NullFloat64(s.SuccessRatePercent),
		s.Verification, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save seller %s: %w", s.ID, err)
	}
	return nil
}

func scanSeller(row rowScanner) (*Seller, error) {
	s := &Seller{}
	var skills string
	var budgetMin, budgetMax, rating, responseTime, successRate sql.NullFloat64

	err := row.Scan(
		&s.ID, &s.Name, &s.Location, &skills, &budgetMin, &budgetMax, &rating,
		&responseTime, &successRate, &s.Verification, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Skills = decodeStrings(skills)
	s.BudgetMin = Float64Ptr(budgetMin)
	s.BudgetMax = Float64Ptr(budgetMax)
	s.Rating = Float64Ptr(rating)
	s.ResponseTimeMinutes = Float64Ptr(responseTime)
	s.SuccessRatePercent = Float64Ptr(successRate)
	return s, nil
}

// GetSeller retrieves a seller by ID
func (db *DB) GetSeller(ctx context.Context, id string) (*Seller, error) {
	row := db.QueryRowContext(ctx, `SELECT `+sellerColumns+` FROM sellers WHERE id = ?`, id)

	s, err := scanSeller(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("seller %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListSellers retrieves seller profiles ordered by ID
func (db *DB) ListSellers(ctx context.Context, opts ListOptions) ([]Seller, error) {
	query := `SELECT ` + sellerColumns + ` FROM sellers WHERE 1=1`
	args := []interface{}{}

	if opts.Location != nil {
		query += " AND LOWER(location) LIKE LOWER(?)"
		args = append(args, "%"+*opts.Location+"%")
	}

	query += " ORDER BY id" + limitClause(opts)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sellers []Seller
	for rows.Next() {
		s, err := scanSeller(rows)
		if err != nil {
			return nil, err
		}
		sellers = append(sellers, *s)
	}
	return sellers, rows.Err()
}

// Candidates returns every seller as an engine candidate
func (db *DB) Candidates(ctx context.Context) ([]matching.Candidate, error) {
	sellers, err := db.ListSellers(ctx, ListOptions{})
	if err != nil {
		return nil, err
	}

	candidates := make([]matching.Candidate, 0, len(sellers))
	for i := range sellers {
		candidates = append(candidates, sellers[i].ToCandidate())
	}
	return candidates, nil
}

// SaveMatchRun records the results of a matching call
func (db *DB) SaveMatchRun(ctx context.Context, run *MatchRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	run.CreatedAt = time.Now().UTC()
	run.ResultCount = len(run.Results)

	results := run.Results
	if results == nil {
		results = []matching.MatchResult{}
	}
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode match results: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO match_runs (id, enquiry_id, candidate_count, result_count, results, cached, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.EnquiryID, run.CandidateCount, run.ResultCount, string(data), run.Cached, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save match run: %w", err)
	}
	return nil
}

// LatestMatchRun returns the most recent match run for an enquiry
func (db *DB) LatestMatchRun(ctx context.Context, enquiryID string) (*MatchRun, error) {
	run := &MatchRun{}
	var results string

	err := db.QueryRowContext(ctx, `
		SELECT id, enquiry_id, candidate_count, result_count, results, cached, created_at
		FROM match_runs WHERE enquiry_id = ?
		ORDER BY created_at DESC, rowid DESC LIMIT 1
	`, enquiryID).Scan(
		&run.ID, &run.EnquiryID, &run.CandidateCount, &run.ResultCount, &results, &run.Cached, &run.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("match run for enquiry %s: %w", enquiryID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(results), &run.Results); err != nil {
		return nil, fmt.Errorf("failed to decode match results: %w", err)
	}
	return run, nil
}

// Import upserts every enquiry and seller of ds in one transaction
func (db *DB) Import(ctx context.Context, ds *Dataset) error {
	return db.Transaction(ctx, func(tx *sql.Tx) error {
		for i := range ds.Enquiries {
			if err := saveEnquiry(ctx, tx, &ds.Enquiries[i], true); err != nil {
				return err
			}
		}
		for i := range ds.Sellers {
			if err := saveSeller(ctx, tx, &ds.Sellers[i], true); err != nil {
				return err
			}
		}
		return nil
	})
}

func limitClause(opts ListOptions) string {
	if opts.Limit <= 0 {
		return ""
	}
	clause := fmt.Sprintf(" LIMIT %d", opts.Limit)
	if opts.Offset > 0 {
		clause += fmt.Sprintf(" OFFSET %d", opts.Offset)
	}
	return clause
}
