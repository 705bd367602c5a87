package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const portalBase = "https://www.iimjobs.com"

func parseFragment(t *testing.T, fragment string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	require.NoError(t, err)
	sel := doc.Find("body").Children().First()
	require.Equal(t, 1, sel.Length(), "fixture must have a single root element")
	return sel
}

func TestExtractSummaryFullContainer(t *testing.T) {
	container := parseFragment(t, `
		<div class="job-card">
			<h2>Senior Finance Manager</h2>
			<h3>Acme Capital</h3>
			<p>Mumbai | 5-8 Yrs | 20-30 LPA | Full-time</p>
			<p>Posted 3 days ago</p>
			<a href="/j/senior-finance-manager-123">View</a>
			<img src="https://cdn.example.com/logo.png">
		</div>`)

	summary, ok := ExtractSummary(container, portalBase)
	require.True(t, ok)

	assert.Equal(t, "Senior Finance Manager", summary.Title)
	assert.Equal(t, "Acme Capital", summary.Company)
	assert.Equal(t, "5-8 Yrs", summary.Experience)
	assert.Equal(t, "Mumbai", summary.Location)
	assert.Equal(t, "20-30 LPA", summary.Salary)
	assert.Equal(t, "Full-time", summary.JobType)
	assert.Equal(t, "Posted 3 Days Ago", summary.Posted)
	assert.Equal(t, portalBase+"/j/senior-finance-manager-123", summary.Link)
	assert.Equal(t, "https://cdn.example.com/logo.png", summary.Logo)
	assert.Equal(t, ExtractionMethod, summary.ExtractionMethod)
}

func TestExtractSummaryRejectsShortContainer(t *testing.T) {
	container := parseFragment(t, `<div><h2>Nav</h2></div>`)

	_, ok := ExtractSummary(container, portalBase)
	assert.False(t, ok)
}

func TestExtractSummaryTitleMustDifferFromCompany(t *testing.T) {
	container := parseFragment(t, `
		<div>
			<h2>Acme Capital</h2>
			<h3>Acme Capital</h3>
			<h4>Equity Research Analyst</h4>
			<p>Looking for an analyst with strong modeling skills in Bangalore.</p>
		</div>`)

	summary, ok := ExtractSummary(container, portalBase)
	require.True(t, ok)

	// h3 wins the company ladder, so the title ladder must skip the
	// identical h2/h3 texts and land on the h4.
	assert.Equal(t, "Acme Capital", summary.Company)
	assert.Equal(t, "Equity Research Analyst", summary.Title)
}

func TestExtractSummaryLineFallback(t *testing.T) {
	container := parseFragment(t, `
		<div>
			<span>Growth Marketing Lead</span><br>
			<span>Brightside Ventures</span><br>
			<span>Own the full acquisition funnel across paid and organic channels.</span>
		</div>`)

	summary, ok := ExtractSummary(container, portalBase)
	require.True(t, ok)

	assert.Equal(t, "Growth Marketing Lead", summary.Title)
	assert.Equal(t, "Brightside Ventures", summary.Company)
}

func TestExtractSummaryRelativeAndAbsoluteLinks(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{"absolute passes through", "https://other.example.com/job/1", "https://other.example.com/job/1"},
		{"relative resolves against base", "/job/42", portalBase + "/job/42"},
		{"javascript dropped", "javascript:void(0)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			container := parseFragment(t, `
				<div>
					<h2>Operations Manager</h2>
					<h3>Logibee</h3>
					<p>Manage warehouse operations and vendor relationships end to end.</p>
					<a href="`+tt.href+`">open</a>
				</div>`)

			summary, ok := ExtractSummary(container, portalBase)
			require.True(t, ok)
			assert.Equal(t, tt.want, summary.Link)
		})
	}
}

func TestExtractSummaryRelativeLogoDropped(t *testing.T) {
	container := parseFragment(t, `
		<div>
			<h2>Product Manager</h2>
			<h3>Craftly</h3>
			<p>Drive the roadmap for our consumer app with 2-4 Yrs of experience.</p>
			<img src="/static/logo.png">
		</div>`)

	summary, ok := ExtractSummary(container, portalBase)
	require.True(t, ok)
	assert.Empty(t, summary.Logo)
}

func TestExtractSummaryRawTextTruncated(t *testing.T) {
	long := strings.Repeat("salary details and role expectations ", 30)
	container := parseFragment(t, `
		<div>
			<h2>Data Analyst</h2>
			<h3>Metrica</h3>
			<p>`+long+`</p>
		</div>`)

	summary, ok := ExtractSummary(container, portalBase)
	require.True(t, ok)
	assert.LessOrEqual(t, len(summary.RawText), 500)
}

func TestExperiencePatternLadder(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Needs 3-5 Yrs in consulting", "3-5 Yrs"},
		{"At least 7+ yrs", "7+ yrs"},
		{"From 2 to 4 years on the job", "2 to 4 years"},
		{"Fresher welcome", "Fresher"},
		{"Entry level position", "Entry level"},
		{"no hint at all", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, firstPatternMatch(experiencePatterns, tt.text), tt.text)
	}
}

func TestSalaryPatternLadder(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Pays ₹ 12,00,000 - ₹ 18,00,000 annually", "₹ 12,00,000 - ₹ 18,00,000"},
		{"CTC 15-25 LPA", "15-25 LPA"},
		{"Band of 10 - 14 Lakh", "10 - 14 Lakh"},
		{"Salary Not disclosed by recruiter", "Not disclosed"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, firstPatternMatch(salaryPatterns, tt.text), tt.text)
	}
}

func TestLocationKeywordIsCanonical(t *testing.T) {
	container := parseFragment(t, `
		<div>
			<h2>Sales Director</h2>
			<h3>Pinnacle Foods</h3>
			<p>Role based out of GURGAON with frequent regional travel.</p>
		</div>`)

	summary, ok := ExtractSummary(container, portalBase)
	require.True(t, ok)
	assert.Equal(t, "Gurgaon", summary.Location)
}

func TestContainerTextInsertsLineBreaks(t *testing.T) {
	sel := parseFragment(t, `<div><h2>Alpha</h2><p>Beta</p><span>Gamma</span></div>`)

	text := ContainerText(sel)
	lines := strings.Split(text, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Alpha", lines[0])
	assert.Equal(t, "Beta", lines[1])
	assert.Equal(t, "Gamma", lines[2])
}
