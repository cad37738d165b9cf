package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vijay-prabhu/smartmatch/internal/matching"
)

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "smartmatch-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := Open(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open database: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return db, cleanup
}

func floatPtr(f float64) *float64 {
	return &f
}

func strPtr(s string) *string {
	return &s
}

func TestOpen(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	for _, table := range []string{"enquiries", "sellers", "match_runs"} {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("failed to query tables: %v", err)
		}
		if count != 1 {
			t.Errorf("expected %s table to exist", table)
		}
	}

	if err := db.Health(context.Background()); err != nil {
		t.Errorf("Health failed: %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "smartmatch.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := db.CreateSeller(context.Background(), &Seller{ID: "s1", Name: "One"}); err != nil {
		t.Fatalf("CreateSeller failed: %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer db.Close()

	if _, err := db.GetSeller(context.Background(), "s1"); err != nil {
		t.Errorf("expected seller to survive reopen: %v", err)
	}
}

func TestEnquiryCRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	e := &Enquiry{
		Title:        "Need a web developer",
		Description:  "E-commerce website",
		Category:     "services",
		Budget:       50000,
		Location:     "Mumbai",
		OwnerID:      "buyer-1",
		Tags:         []string{"web-development"},
		Requirements: []string{"frontend", "backend"},
		Timeline:     strPtr("2 weeks"),
	}

	if err := db.CreateEnquiry(ctx, e); err != nil {
		t.Fatalf("CreateEnquiry failed: %v", err)
	}
	if e.ID == "" {
		t.Error("expected ID to be set after create")
	}
	if e.Status != EnquiryOpen {
		t.Errorf("expected status open, got %s", e.Status)
	}
	if e.Urgency != matching.UrgencyNormal {
		t.Errorf("expected default urgency normal, got %s", e.Urgency)
	}

	fetched, err := db.GetEnquiry(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetEnquiry failed: %v", err)
	}
	if fetched.Title != e.Title || fetched.Budget != 50000 {
		t.Errorf("unexpected enquiry: %+v", fetched)
	}
	if len(fetched.Tags) != 1 || fetched.Tags[0] != "web-development" {
		t.Errorf("expected tags to round-trip, got %v", fetched.Tags)
	}
	if len(fetched.Requirements) != 2 {
		t.Errorf("expected 2 requirements, got %v", fetched.Requirements)
	}
	if fetched.Timeline == nil || *fetched.Timeline != "2 weeks" {
		t.Errorf("expected timeline to round-trip, got %v", fetched.Timeline)
	}

	if err := db.UpdateEnquiryStatus(ctx, e.ID, EnquiryClosed); err != nil {
		t.Fatalf("UpdateEnquiryStatus failed: %v", err)
	}
	fetched, _ = db.GetEnquiry(ctx, e.ID)
	if fetched.Status != EnquiryClosed {
		t.Errorf("expected status closed, got %s", fetched.Status)
	}

	if err := db.UpdateEnquiryStatus(ctx, "missing", EnquiryClosed); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetMissing(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := db.GetEnquiry(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetEnquiry: expected ErrNotFound, got %v", err)
	}
	if _, err := db.GetSeller(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSeller: expected ErrNotFound, got %v", err)
	}
	if _, err := db.LatestMatchRun(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LatestMatchRun: expected ErrNotFound, got %v", err)
	}
}

func TestListEnquiriesWithFilters(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	fixtures := []Enquiry{
		{ID: "e1", Title: "Web", Category: "services", Location: "Mumbai", OwnerID: "b", CreatedAt: base},
		{ID: "e2", Title: "Tailor", Category: "fashion", Location: "Pune, Maharashtra", OwnerID: "b", CreatedAt: base.Add(time.Minute)},
		{ID: "e3", Title: "Cleaning", Category: "Services", Location: "Chennai", OwnerID: "b", CreatedAt: base.Add(2 * time.Minute)},
	}
	for i := range fixtures {
		if err := db.CreateEnquiry(ctx, &fixtures[i]); err != nil {
			t.Fatalf("CreateEnquiry failed: %v", err)
		}
	}
	if err := db.UpdateEnquiryStatus(ctx, "e3", EnquiryClosed); err != nil {
		t.Fatalf("UpdateEnquiryStatus failed: %v", err)
	}

	all, err := db.ListEnquiries(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("ListEnquiries failed: %v", err)
	}
	if len(all) != 3 || all[0].ID != "e3" {
		t.Errorf("expected 3 enquiries newest first, got %d (first %q)", len(all), all[0].ID)
	}

	category := "services"
	services, _ := db.ListEnquiries(ctx, ListOptions{Category: &category})
	if len(services) != 2 {
		t.Errorf("expected 2 services enquiries, got %d", len(services))
	}

	open := EnquiryOpen
	opened, _ := db.ListEnquiries(ctx, ListOptions{Status: &open})
	if len(opened) != 2 {
		t.Errorf("expected 2 open enquiries, got %d", len(opened))
	}

	loc := "maharashtra"
	local, _ := db.ListEnquiries(ctx, ListOptions{Location: &loc})
	if len(local) != 1 || local[0].ID != "e2" {
		t.Errorf("expected only e2 for location filter, got %v", local)
	}

	page, _ := db.ListEnquiries(ctx, ListOptions{Limit: 1, Offset: 1})
	if len(page) != 1 || page[0].ID != "e2" {
		t.Errorf("expected e2 on page 2, got %v", page)
	}
}

func TestSellerCRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	joined := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s := &Seller{
		Name:                "Asha Web Studio",
		Location:            "Mumbai",
		Skills:              []string{"web-development", "react"},
		BudgetMin:           floatPtr(30000),
		BudgetMax:           floatPtr(60000),
		ResponseTimeMinutes: floatPtr(45),
		Verification:        matching.VerificationVerified,
		CreatedAt:           joined,
	}
	if err := db.CreateSeller(ctx, s); err != nil {
		t.Fatalf("CreateSeller failed: %v", err)
	}

	fetched, err := db.GetSeller(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetSeller failed: %v", err)
	}
	if !fetched.CreatedAt.Equal(joined) {
		t.Errorf("expected created_at %v, got %v", joined, fetched.CreatedAt)
	}
	if fetched.Rating != nil || fetched.SuccessRatePercent != nil {
		t.Error("expected missing metrics to stay nil")
	}

	c := fetched.ToCandidate()
	if c.Budget == nil || c.Budget.Min != 30000 || c.Budget.Max != 60000 {
		t.Errorf("unexpected candidate budget: %+v", c.Budget)
	}
	if c.ResponseTimeMinutes == nil || *c.ResponseTimeMinutes != 45 {
		t.Errorf("unexpected response time: %v", c.ResponseTimeMinutes)
	}
	if c.Verification != matching.VerificationVerified {
		t.Errorf("unexpected verification: %s", c.Verification)
	}

	halfBudget := &Seller{ID: "half", Name: "Half", BudgetMin: floatPtr(100)}
	if err := db.CreateSeller(ctx, halfBudget); err != nil {
		t.Fatalf("CreateSeller failed: %v", err)
	}
	if halfBudget.Verification != matching.VerificationUnverified {
		t.Errorf("expected default verification unverified, got %s", halfBudget.Verification)
	}
	if halfBudget.ToCandidate().Budget != nil {
		t.Error("expected no budget range with only one bound")
	}

	if err := db.CreateSeller(ctx, &Seller{ID: "half", Name: "Duplicate"}); err == nil {
		t.Error("expected duplicate ID to fail")
	}

	candidates, err := db.Candidates(ctx)
	if err != nil {
		t.Fatalf("Candidates failed: %v", err)
	}
	if len(candidates) != 2 {
		t.Errorf("expected 2 candidates, got %d", len(candidates))
	}

	loc := "mumbai"
	sellers, _ := db.ListSellers(ctx, ListOptions{Location: &loc})
	if len(sellers) != 1 || sellers[0].Name != "Asha Web Studio" {
		t.Errorf("unexpected sellers for location filter: %v", sellers)
	}
}

func TestMatchRuns(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	e := &Enquiry{ID: "e1", Title: "Web", OwnerID: "b"}
	if err := db.CreateEnquiry(ctx, e); err != nil {
		t.Fatalf("CreateEnquiry failed: %v", err)
	}

	first := &MatchRun{EnquiryID: "e1", CandidateCount: 3}
	if err := db.SaveMatchRun(ctx, first); err != nil {
		t.Fatalf("SaveMatchRun failed: %v", err)
	}

	second := &MatchRun{
		EnquiryID:      "e1",
		CandidateCount: 3,
		Cached:         true,
		Results: []matching.MatchResult{{
			CandidateID:     "s1",
			Score:           86,
			Quality:         matching.QualityExcellent,
			Factors:         matching.FactorVector{SkillMatch: 1, LocationMatch: 0.6},
			Reasons:         []string{"Excellent skill match for your requirements"},
			Recommendations: []string{},
		}},
	}
	if err := db.SaveMatchRun(ctx, second); err != nil {
		t.Fatalf("SaveMatchRun failed: %v", err)
	}

	latest, err := db.LatestMatchRun(ctx, "e1")
	if err != nil {
		t.Fatalf("LatestMatchRun failed: %v", err)
	}
	if latest.ID != second.ID {
		t.Errorf("expected latest run %s, got %s", second.ID, latest.ID)
	}
	if !latest.Cached || latest.ResultCount != 1 {
		t.Errorf("unexpected run metadata: %+v", latest)
	}
	if len(latest.Results) != 1 || latest.Results[0].Factors.LocationMatch != 0.6 {
		t.Errorf("expected results to round-trip, got %+v", latest.Results)
	}

	if err := db.SaveMatchRun(ctx, &MatchRun{EnquiryID: "missing"}); err == nil {
		t.Error("expected foreign key violation for unknown enquiry")
	}
}

func TestImport(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	ds := &Dataset{
		Enquiries: []Enquiry{{ID: "e1", Title: "Web", OwnerID: "b", Budget: 1000}},
		Sellers: []Seller{
			{ID: "s1", Name: "One", Skills: []string{"design"}},
			{ID: "s2", Name: "Two"},
		},
	}
	if err := db.Import(ctx, ds); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	// Importing again updates in place
	ds.Enquiries[0].Budget = 2000
	ds.Sellers[0].Name = "One Renamed"
	if err := db.Import(ctx, ds); err != nil {
		t.Fatalf("second Import failed: %v", err)
	}

	e, _ := db.GetEnquiry(ctx, "e1")
	if e.Budget != 2000 {
		t.Errorf("expected budget 2000, got %v", e.Budget)
	}
	s, _ := db.GetSeller(ctx, "s1")
	if s.Name != "One Renamed" {
		t.Errorf("expected renamed seller, got %q", s.Name)
	}

	enquiries, sellers, err := db.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if enquiries != 1 || sellers != 2 {
		t.Errorf("expected 1 enquiry and 2 sellers, got %d and %d", enquiries, sellers)
	}
}

func TestImportRollsBack(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `
		CREATE TRIGGER reject_seller BEFORE INSERT ON sellers
		WHEN NEW.id = 'rejected'
		BEGIN SELECT RAISE(ABORT, 'rejected'); END
	`)
	if err != nil {
		t.Fatalf("failed to create trigger: %v", err)
	}

	ds := &Dataset{
		Enquiries: []Enquiry{{ID: "e1", Title: "Web", OwnerID: "b"}},
		Sellers:   []Seller{{ID: "rejected", Name: "Nope"}},
	}
	if err := db.Import(ctx, ds); err == nil {
		t.Fatal("expected import to fail")
	}

	if _, err := db.GetEnquiry(ctx, "e1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected enquiry insert to be rolled back, got %v", err)
	}
}

func TestDecodeStrings(t *testing.T) {
	if got := decodeStrings("not json"); len(got) != 0 || got == nil {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
	if got := decodeStrings("null"); got == nil {
		t.Error("expected non-nil slice for null")
	}
	if got := encodeStrings(nil); got != "[]" {
		t.Errorf("expected [], got %q", got)
	}
}
