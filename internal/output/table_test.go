package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/smartmatch/internal/database"
	"github.com/vijay-prabhu/smartmatch/internal/matching"
	"github.com/vijay-prabhu/smartmatch/internal/service"
)

func sampleMatches() []matching.MatchResult {
	return []matching.MatchResult{
		{
			CandidateID:   "seller-1",
			CandidateName: "Asha Web Studio",
			Score:         86,
			Quality:       matching.QualityExcellent,
			Factors:       matching.FactorVector{SkillMatch: 1, BudgetMatch: 1, LocationMatch: 1},
			Reasons:       []string{"Excellent skill match for your requirements"},
			Recommendations: []string{
				"Discuss timeline expectations",
			},
		},
		{
			CandidateID: "seller-2",
			Score:       55,
			Quality:     matching.QualityFair,
		},
	}
}

func TestTableMatches(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TableTo(&buf, sampleMatches()))

	out := buf.String()
	assert.Contains(t, out, "Asha Web Studio")
	assert.Contains(t, out, "86")
	assert.Contains(t, out, matching.QualityExcellent.Label())
	assert.Contains(t, out, "Excellent skill match")
	// unnamed sellers fall back to their ID
	assert.Contains(t, out, "seller-2")
}

func TestTableEmpty(t *testing.T) {
	tests := []struct {
		name string
		data interface{}
		want string
	}{
		{"matches", []matching.MatchResult{}, "No matches found."},
		{"explained", Explained(nil), "No matches found."},
		{"enquiries", []database.Enquiry{}, "No enquiries found."},
		{"sellers", []database.Seller{}, "No sellers found."},
		{"issues", []matching.AdjacencyIssue{}, "Region table is consistent."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, TableTo(&buf, tt.data))
			assert.Equal(t, tt.want+"\n", buf.String())
		})
	}
}

func TestTableExplained(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TableTo(&buf, Explained(sampleMatches()[:1])))

	out := buf.String()
	assert.Contains(t, out, "#1 Asha Web Studio  86/100")
	assert.Contains(t, out, string(matching.FactorSkill))
	assert.Contains(t, out, "1.00")
	assert.Contains(t, out, "Why this match:")
	assert.Contains(t, out, "  - Discuss timeline expectations")
}

func TestTableReport(t *testing.T) {
	report := &service.Report{
		Enquiry:        &database.Enquiry{ID: "enq-1", Title: "Need a web developer"},
		Results:        sampleMatches(),
		CandidateCount: 12,
		Cached:         true,
	}

	var buf bytes.Buffer
	require.NoError(t, TableTo(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "Need a web developer (enq-1)")
	assert.Contains(t, out, "Candidates:  12")
	assert.Contains(t, out, "Matches:     2 (cached)")
}

func TestTableIssues(t *testing.T) {
	issues := []matching.AdjacencyIssue{
		{Kind: matching.IssueOneWay, From: "maharashtra", To: "goa"},
	}

	var buf bytes.Buffer
	require.NoError(t, TableTo(&buf, issues))

	out := buf.String()
	assert.Contains(t, out, "one_way")
	assert.Contains(t, out, "1 issue(s).")
}

func TestTableUnsupported(t *testing.T) {
	err := TableTo(&bytes.Buffer{}, 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported data type")
}

func TestOutputTo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputTo(&buf, "json", Explained(sampleMatches())))

	var decoded []matching.MatchResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleMatches(), decoded)

	err := OutputTo(&bytes.Buffer{}, "xml", sampleMatches())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
