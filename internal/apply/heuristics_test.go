package apply

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestHasQuestionFormMarker(t *testing.T) {
	assert.True(t, HasQuestionFormMarker(
		"Some chrome\nBefore you submit your application, tell the recruiter more about yourself\nmore"))
	assert.False(t, HasQuestionFormMarker("Review your Application"))
}

func TestHasReviewMarkerVariants(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Review your Application", true},
		{"You are Applying to VP Finance", true},
		{"You’re applying to VP Finance", true}, // curly apostrophe rendering
		{"You're applying to VP Finance", false},
		{"random page", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HasReviewMarker(tt.text), tt.text)
	}
}

func TestIsQuestionBlock(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"real question", "What is your current notice period in days?", true},
		{"too few words", "Notice period?", false},
		{"submit chrome", "Click Submit when you are done with all answers", false},
		{"review chrome", "Review everything before you continue with the answers", false},
		{"posted by chrome", "Posted by the hiring team at Acme recently", false},
		{"experience chrome", "Needs 5 Yrs of experience in the domain", false},
		{"apply chrome", "Apply here after finishing every single question", false},
		{"applying banner", "You are Applying and this text is long enough", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsQuestionBlock(tt.text))
		})
	}
}

func TestHarvestQuestionsDedupPreservesOrder(t *testing.T) {
	doc := parseDoc(t, `
		<html><body>
			<div class="MuiBox-root a"><p>Why do you want to join this company?</p></div>
			<div class="MuiBox-root b"><p>What is your current notice period in days?</p></div>
			<div class="MuiBox-root c"><p>Why do you want to join this company?</p></div>
			<div class="MuiBox-root d"><p>Click Submit when done with the answers</p></div>
		</body></html>`)

	questions := HarvestQuestions(doc)
	assert.Equal(t, []string{
		"Why do you want to join this company?",
		"What is your current notice period in days?",
	}, questions)
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		answer    string
		chooseYes bool
		chooseNo  bool
		text      string
	}{
		{"Yes", true, false, "yes"},
		{"  NO ", false, true, "no"},
		{"yes, notice period is negotiable", true, false, "yes, notice period is negotiable"},
		{"90 days", false, false, "90 days"},
		// "yes" wins when both words appear
		{"yes but also no", true, false, "yes but also no"},
	}

	for _, tt := range tests {
		directive := ParseAnswer(tt.answer)
		assert.Equal(t, tt.chooseYes, directive.ChooseYes, tt.answer)
		assert.Equal(t, tt.chooseNo, directive.ChooseNo, tt.answer)
		assert.Equal(t, tt.text, directive.Text, tt.answer)
	}
}

func TestExtractReviewSnapshotPanels(t *testing.T) {
	doc := parseDoc(t, `
		<html><body>
			<h2>You are Applying to VP Finance at Acme</h2>
			<div class="MuiBox-root"><h6>Resume</h6><p>resume.pdf</p></div>
			<div class="MuiBox-root"><h6>Personal Details</h6><p>Jane, Mumbai</p></div>
			<div class="MuiBox-root"><h6>Education</h6><p>MBA Finance</p></div>
			<div class="MuiBox-root"><h6>Work Experience</h6><p>Acme, 6 years</p></div>
			<div class="MuiBox-root"><h6>Notice Period</h6><p>60 days</p></div>
		</body></html>`)

	snapshot := ExtractReviewSnapshot(doc)

	assert.Equal(t, "You are Applying to VP Finance at Acme", snapshot.JobTitle)
	assert.Contains(t, snapshot.Resume, "resume.pdf")
	assert.Contains(t, snapshot.PersonalDetails, "Jane, Mumbai")
	assert.Contains(t, snapshot.Education, "MBA Finance")
	assert.Contains(t, snapshot.Experience, "Acme, 6 years")
	assert.Contains(t, snapshot.NoticePeriod, "60 days")
	assert.False(t, snapshot.IsEmpty())
}

func TestExtractReviewSnapshotMissingPanels(t *testing.T) {
	doc := parseDoc(t, `<html><body><div class="MuiBox-root"><p>no headings here</p></div></body></html>`)

	snapshot := ExtractReviewSnapshot(doc)
	assert.True(t, snapshot.IsEmpty())
}

func TestExtractReviewSnapshotOuterWrapperDoesNotShadowPanels(t *testing.T) {
	// A wrapper MuiBox containing every panel appears first in document
	// order; each panel must still be captured once, from the first block
	// that carries its heading.
	doc := parseDoc(t, `
		<html><body>
			<div class="MuiBox-root wrapper">
				<div class="MuiBox-root"><h6>Resume</h6><p>resume.pdf</p></div>
				<div class="MuiBox-root"><h6>Notice Period</h6><p>30 days</p></div>
			</div>
		</body></html>`)

	snapshot := ExtractReviewSnapshot(doc)
	assert.Contains(t, snapshot.Resume, "resume.pdf")
	assert.Contains(t, snapshot.NoticePeriod, "30 days")
}
