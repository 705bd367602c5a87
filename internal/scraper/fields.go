package scraper

import (
	"regexp"
	"strings"

	"hiredeck-utils/pkg/models"
	"hiredeck-utils/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ExtractionMethod tags every summary produced by the field extractors so
// clients can tell which pipeline a record came from.
const ExtractionMethod = "enhanced_portal"

// A container whose text is shorter than this is navigation chrome or an ad
// slot, not a job listing.
const minContainerTextLen = 20

// rawTextLimit caps the raw_text diagnostic field on each summary.
const rawTextLimit = 500

// Field extraction ladders. Each list is ordered; the first hit wins and the
// rest are never consulted.
var (
	companySelectors = []string{
		"h3", "h4", "h2", ".company", ".company-name", "[data-company]",
		"strong", "b", ".employer", ".org-name",
	}

	titleSelectors = []string{
		"h1", "h2", "h3", "h4", "h5", ".title", ".job-title", ".position",
		"a[href*='job']", "a[href*='view']", ".role", ".designation",
	}

	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+\s*-\s*\d+\s*[Yy]rs?)`),
		regexp.MustCompile(`(?i)(\d+\+?\s*[Yy]rs?)`),
		regexp.MustCompile(`(?i)(\d+\s*to\s*\d+\s*[Yy]ears?)`),
		regexp.MustCompile(`(?i)(Fresher)`),
		regexp.MustCompile(`(?i)(Entry\s*level)`),
	}

	salaryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(₹\s*\d+[,\d]*\s*-\s*₹?\s*\d+[,\d]*)`),
		regexp.MustCompile(`(?i)(\d+\s*-\s*\d+\s*LPA)`),
		regexp.MustCompile(`(?i)(\d+\s*-\s*\d+\s*Lakh)`),
		regexp.MustCompile(`(?i)(Not\s*disclosed)`),
		regexp.MustCompile(`(?i)(Salary\s*negotiable)`),
	}

	// Matched against lowercased text.
	postedPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(posted\s+today)`),
		regexp.MustCompile(`(posted\s+yesterday)`),
		regexp.MustCompile(`(posted\s+\d+\s+days?\s+ago)`),
		regexp.MustCompile(`(\d+\s+days?\s+ago)`),
		regexp.MustCompile(`(few\s+hours?\s+ago)`),
	}

	locationKeywords = []string{
		"Hyderabad", "Bangalore", "Mumbai", "Delhi", "Chennai", "Pune", "Kolkata",
		"Gurgaon", "Noida", "Ahmedabad", "Jaipur", "Indore", "Bhopal", "Lucknow",
		"Kochi", "Coimbatore", "Vadodara", "Nagpur", "Visakhapatnam", "Surat",
		"Remote", "Work from home", "WFH",
	}

	jobTypeKeywords = []string{
		"Full-time", "Part-time", "Contract", "Permanent", "Temporary", "Internship",
	}
)

// ExtractSummary applies the field extraction ladders to a single feed
// container and returns the summary plus whether it is worth keeping. A
// container that yields neither title nor company is discarded.
func ExtractSummary(container *goquery.Selection, baseURL string) (models.JobSummary, bool) {
	text := ContainerText(container)
	if len(text) < minContainerTextLen {
		return models.JobSummary{}, false
	}

	summary := models.JobSummary{
		RawText:          utils.Truncate(text, rawTextLimit),
		ExtractionMethod: ExtractionMethod,
	}

	summary.Company = firstSelectorText(container, companySelectors, func(t string) bool {
		return len(t) > 1 && len(t) < 100
	})

	summary.Title = firstSelectorText(container, titleSelectors, func(t string) bool {
		return len(t) > 3 && t != summary.Company
	})

	summary.Experience = firstPatternMatch(experiencePatterns, text)
	summary.Salary = firstPatternMatch(salaryPatterns, text)
	summary.Location = firstKeywordMatch(locationKeywords, text)
	summary.JobType = firstKeywordMatch(jobTypeKeywords, text)

	if posted := firstPatternMatch(postedPatterns, strings.ToLower(text)); posted != "" {
		summary.Posted = titleCase(posted)
	}

	summary.Link = extractLink(container, baseURL)
	summary.Logo = extractLogo(container)

	if !summary.HasIdentity() {
		fillIdentityFromLines(&summary, text)
	}

	return summary, summary.HasIdentity()
}

// firstSelectorText walks the selector ladder and returns the text of the
// first element that exists and satisfies accept.
func firstSelectorText(container *goquery.Selection, selectors []string, accept func(string) bool) string {
	for _, selector := range selectors {
		found := ""
		container.Find(selector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			text := strings.TrimSpace(el.Text())
			if text != "" && accept(text) {
				found = text
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

func firstPatternMatch(patterns []*regexp.Regexp, text string) string {
	for _, pattern := range patterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			return match[1]
		}
	}
	return ""
}

// firstKeywordMatch returns the first keyword present in the text. Matching
// is case-insensitive, but the returned value is the canonical keyword, not
// the text's casing.
func firstKeywordMatch(keywords []string, text string) string {
	lower := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return keyword
		}
	}
	return ""
}

// extractLink resolves the container's first anchor. Absolute links pass
// through; site-relative links resolve against the portal base; anything
// else (javascript:, fragments) is dropped.
func extractLink(container *goquery.Selection, baseURL string) string {
	href, exists := container.Find("a").First().Attr("href")
	if !exists || href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return strings.TrimSuffix(baseURL, "/") + href
	}
	return ""
}

// extractLogo returns the container's first image source, absolute URLs only.
func extractLogo(container *goquery.Selection) string {
	src, exists := container.Find("img").First().Attr("src")
	if exists && strings.HasPrefix(src, "http") {
		return src
	}
	return ""
}

// fillIdentityFromLines is the last-resort identity heuristic: scan the first
// five text lines for plausibly-sized ones and treat the first as the title
// and the next distinct one as the company.
func fillIdentityFromLines(summary *models.JobSummary, text string) {
	lines := splitLines(text)
	if len(lines) > 5 {
		lines = lines[:5]
	}

	for _, line := range lines {
		if len(line) <= 5 || len(line) >= 80 {
			continue
		}
		if summary.Title == "" {
			summary.Title = line
		} else if summary.Company == "" && line != summary.Title {
			summary.Company = line
			break
		}
	}
}

// titleCase capitalizes the first letter of each space-separated word.
func titleCase(text string) string {
	words := strings.Fields(text)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// ContainerText renders a selection to plain text with newlines at block
// element boundaries, approximating what a browser reports as visible text.
// goquery's own Text() concatenates text nodes with no separators, which
// breaks the line-based heuristics.
func ContainerText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, node := range sel.Nodes {
		writeNodeText(&b, node)
	}
	return strings.TrimSpace(strings.Join(splitLines(b.String()), "\n"))
}

var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "div": true, "dl": true, "dt": true, "dd": true,
	"fieldset": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "tr": true, "ul": true,
}

func writeNodeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" || n.Data == "noscript" {
			return
		}
		block := blockElements[n.Data]
		if block {
			b.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNodeText(b, c)
		}
		if block {
			b.WriteString("\n")
		}
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNodeText(b, c)
		}
	}
}
