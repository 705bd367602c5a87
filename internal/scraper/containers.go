package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Structural container selectors, most portal-specific first. A selector
// only counts as a hit when it matches more than one element; a single match
// is almost always a page wrapper, not a listing.
var containerSelectors = []string{
	"[data-job-id]",
	".job-item",
	".job-card",
	".feed-item",
	".job-listing",
	".job-row",
	".job-tile",
	".job-container",
	"div[class*='job']",
	"li[class*='job']",
	"div[class*='listing']",
	"div[class*='card']",
	".card",
	"div:has(img[src*='logo'])",
	"div:has(a[href*='job'])",
	"div:has(a[href*='view'])",
	"tr[class*='job']",
	"tbody tr",
}

// Keywords used by the density fallback when no structural selector matches.
var feedKeywords = []string{
	"hiring", "experience", "years", "salary", "apply", "job", "position", "role",
}

// DiscoverContainers finds candidate job containers in the document. The
// structural ladder is tried first; if it comes up empty the keyword-density
// fallback scans every div. maxJobs bounds the fallback's candidate count.
func DiscoverContainers(doc *goquery.Document, maxJobs int) []*goquery.Selection {
	for _, selector := range containerSelectors {
		matched := doc.Find(selector)
		if matched.Length() > 1 {
			return collectSelections(matched)
		}
	}
	return keywordContainers(doc, maxJobs)
}

// keywordContainers keeps divs whose text contains at least two feed keywords
// and is long enough to be a listing. The result only counts when more than
// three candidates emerge; fewer than that means the page has no feed and the
// hits are coincidental.
func keywordContainers(doc *goquery.Document, maxJobs int) []*goquery.Selection {
	var candidates []*goquery.Selection

	doc.Find("div").Each(func(_ int, div *goquery.Selection) {
		text := strings.ToLower(ContainerText(div))
		if len(text) <= 50 {
			return
		}

		hits := 0
		for _, keyword := range feedKeywords {
			if strings.Contains(text, keyword) {
				hits++
			}
		}
		if hits >= 2 {
			candidates = append(candidates, div)
		}
	})

	if len(candidates) <= 3 {
		return nil
	}

	// Take more than requested; downstream extraction discards some.
	if limit := maxJobs * 2; len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

func collectSelections(matched *goquery.Selection) []*goquery.Selection {
	out := make([]*goquery.Selection, 0, matched.Length())
	matched.Each(func(_ int, el *goquery.Selection) {
		out = append(out, el)
	})
	return out
}
