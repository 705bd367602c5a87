package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobSummaryIdentityTrims(t *testing.T) {
	s := JobSummary{Title: "  VP Finance ", Company: " Acme  "}
	title, company := s.Identity()
	assert.Equal(t, "VP Finance", title)
	assert.Equal(t, "Acme", company)
}

func TestJobSummaryHasIdentity(t *testing.T) {
	assert.True(t, JobSummary{Title: "VP Finance"}.HasIdentity())
	assert.True(t, JobSummary{Company: "Acme"}.HasIdentity())
	assert.False(t, JobSummary{Title: "   "}.HasIdentity())
	assert.False(t, JobSummary{}.HasIdentity())
}

func TestJobDetailSparseSerialization(t *testing.T) {
	detail := JobDetail{Title: "VP Finance", JobURL: "https://www.iimjobs.com/job/1"}

	data, err := json.Marshal(detail)
	require.NoError(t, err)

	// Absent fields are omitted entirely, never serialized empty.
	assert.NotContains(t, string(data), "skills")
	assert.NotContains(t, string(data), "description")
	assert.NotContains(t, string(data), "application_info")
	assert.Contains(t, string(data), "job_url")
}

func TestReviewSnapshotIsEmpty(t *testing.T) {
	assert.True(t, ReviewSnapshot{}.IsEmpty())
	assert.False(t, ReviewSnapshot{Resume: "resume.pdf"}.IsEmpty())
}
