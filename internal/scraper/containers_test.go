package scraper

import (
	"fmt"
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

func TestDiscoverContainersStructuralLadder(t *testing.T) {
	doc := parseDoc(t, `
		<html><body>
			<div class="job-card"><h2>Role A</h2><h3>Company A</h3></div>
			<div class="job-card"><h2>Role B</h2><h3>Company B</h3></div>
			<li class="job-entry">noise that a later selector would catch</li>
		</body></html>`)

	containers := DiscoverContainers(doc, 50)
	assert.Len(t, containers, 2)
}

func TestDiscoverContainersSingleMatchIsNotAHit(t *testing.T) {
	// One .job-card is a page wrapper, not a listing; the ladder must fall
	// through. With no keyword-dense divs either, discovery yields nothing.
	doc := parseDoc(t, `
		<html><body>
			<div class="job-card"><h2>Single wrapper around the page</h2></div>
		</body></html>`)

	containers := DiscoverContainers(doc, 50)
	assert.Empty(t, containers)
}

func TestKeywordFallbackNeedsEnoughCandidates(t *testing.T) {
	entry := `<div>We are hiring for this position, apply with 5 years experience and good salary expectations today.</div>`

	// Three keyword-dense divs are below the candidate threshold.
	doc := parseDoc(t, "<html><body>"+strings.Repeat(entry, 3)+"</body></html>")
	assert.Empty(t, DiscoverContainers(doc, 50))

	// Four clear the threshold.
	doc = parseDoc(t, "<html><body>"+strings.Repeat(entry, 4)+"</body></html>")
	assert.NotEmpty(t, DiscoverContainers(doc, 50))
}

func TestKeywordFallbackRequiresTwoKeywordsAndLength(t *testing.T) {
	doc := parseDoc(t, `
		<html><body>
			<div>job</div>
			<div>job job job job job job job job job job job job job job</div>
			<div>A completely unrelated block of text that is long enough to pass the length gate easily.</div>
			<div>hiring now</div>
		</body></html>`)

	// One keyword repeated still counts once; none of these blocks carry two
	// distinct keywords with enough text.
	assert.Empty(t, DiscoverContainers(doc, 50))
}

func TestKeywordFallbackCapsCandidates(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, `<div>Listing %d: hiring a senior position, apply now, competitive salary and experience required.</div>`, i)
	}
	b.WriteString("</body></html>")

	doc := parseDoc(t, b.String())
	containers := DiscoverContainers(doc, 5)

	// Capped at twice the requested count.
	assert.Len(t, containers, 10)
}
