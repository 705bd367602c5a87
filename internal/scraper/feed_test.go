package scraper

import (
	"testing"

	"hiredeck-utils/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSummariesDeduplicates(t *testing.T) {
	existing := []models.JobSummary{
		{Title: "Finance Manager", Company: "Acme"},
	}
	incoming := []models.JobSummary{
		{Title: "Finance Manager", Company: "Acme"},
		{Title: "Finance Manager", Company: "Globex"},
		{Title: "  Finance Manager  ", Company: "Acme "},
	}

	merged := MergeSummaries(existing, incoming, 0)

	// Same title at a different company is a different job; whitespace
	// variants of an existing identity are duplicates.
	require.Len(t, merged, 2)
	assert.Equal(t, "Globex", merged[1].Company)
}

func TestMergeSummariesHonorsCap(t *testing.T) {
	incoming := []models.JobSummary{
		{Title: "A", Company: "1"},
		{Title: "B", Company: "2"},
		{Title: "C", Company: "3"},
	}

	merged := MergeSummaries(nil, incoming, 2)
	assert.Len(t, merged, 2)
}

func TestMergeSummariesKeepsBothWhenOnlyCompanyMissing(t *testing.T) {
	existing := []models.JobSummary{{Title: "Analyst"}}
	incoming := []models.JobSummary{{Title: "Analyst", Company: "Initech"}}

	merged := MergeSummaries(existing, incoming, 0)
	assert.Len(t, merged, 2)
}

func TestRunLadderStopsAtFirstHit(t *testing.T) {
	calls := []string{}
	record := func(name string, jobs []models.JobSummary) feedAttempt {
		return feedAttempt{Method: name, Run: func() []models.JobSummary {
			calls = append(calls, name)
			return jobs
		}}
	}

	jobs, method, ok := runLadder([]feedAttempt{
		record("first", nil),
		record("second", []models.JobSummary{{Title: "hit", Company: "co"}}),
		record("third", []models.JobSummary{{Title: "never", Company: "co"}}),
	})

	require.True(t, ok)
	assert.Equal(t, "second", method)
	assert.Len(t, jobs, 1)
	// Ladder rungs after a hit are never consulted.
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestRunLadderExhausted(t *testing.T) {
	_, _, ok := runLadder([]feedAttempt{
		{Method: "only", Run: func() []models.JobSummary { return nil }},
	})
	assert.False(t, ok)
}

func TestExtractFeedCapsAndDiscards(t *testing.T) {
	doc := parseDoc(t, `
		<html><body>
			<div class="job-card"><h2>Role One</h2><h3>Alpha Corp</h3><p>padding text to clear the floor</p></div>
			<div class="job-card"><h2>Role Two</h2><h3>Beta Corp</h3><p>padding text to clear the floor</p></div>
			<div class="job-card"><h2>Role Three</h2><h3>Gamma Corp</h3><p>padding text to clear the floor</p></div>
		</body></html>`)

	jobs := ExtractFeed(doc, portalBase, 2)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Role One", jobs[0].Title)
	assert.Equal(t, "Role Two", jobs[1].Title)
}

func TestExtractFeedZeroBudget(t *testing.T) {
	doc := parseDoc(t, `<html><body><div class="job-card"><h2>Role</h2></div></body></html>`)
	assert.Empty(t, ExtractFeed(doc, portalBase, 0))
}
