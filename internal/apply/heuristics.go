package apply

import (
	"strings"

	"hiredeck-utils/pkg/models"

	"github.com/PuerkitoBio/goquery"
)

// Page markers. The question form marker is the portal's exact prompt text;
// the review markers cover three renderings of the review screen heading,
// including the curly-apostrophe variant.
const questionFormMarker = "Before you submit your application, tell the recruiter more about yourself"

var reviewMarkers = []string{
	"Review your Application",
	"You are Applying to",
	"You’re applying to",
}

// Question blocks live in MuiBox containers, as do most of the portal's
// layout wrappers; IsQuestionBlock separates the two.
const questionBlockSelector = "div[class*='MuiBox-root']"

// Substrings that mark a MuiBox block as chrome rather than a question.
var questionBlockExclusions = []string{
	"Submit", "Review", "Posted by", "Yrs", "Apply",
}

// HasQuestionFormMarker reports whether the page shows the pre-submission
// question form.
func HasQuestionFormMarker(pageText string) bool {
	return strings.Contains(pageText, questionFormMarker)
}

// HasReviewMarker reports whether the page shows the application review
// screen.
func HasReviewMarker(pageText string) bool {
	for _, marker := range reviewMarkers {
		if strings.Contains(pageText, marker) {
			return true
		}
	}
	return false
}

// IsQuestionBlock decides whether a block of text is a recruiter question.
// Anything short, anything carrying chrome vocabulary, and the applying
// banner are rejected.
func IsQuestionBlock(text string) bool {
	if text == "" || len(strings.Fields(text)) <= 3 {
		return false
	}
	for _, excluded := range questionBlockExclusions {
		if strings.Contains(text, excluded) {
			return false
		}
	}
	return !strings.HasPrefix(text, "You are Applying")
}

// HarvestQuestions collects the recruiter questions from a question form
// page, deduplicated with first-seen order preserved.
func HarvestQuestions(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var questions []string

	doc.Find(questionBlockSelector).Each(func(_ int, block *goquery.Selection) {
		text := strings.TrimSpace(block.Text())
		if IsQuestionBlock(text) && !seen[text] {
			seen[text] = true
			questions = append(questions, text)
		}
	})

	return questions
}

// AnswerDirective is the interpretation of a client-supplied answer: whether
// it drives the yes or no binary control, plus the normalized text typed into
// any free-text field.
type AnswerDirective struct {
	Text      string
	ChooseYes bool
	ChooseNo  bool
}

// ParseAnswer normalizes an answer and classifies its binary intent. "yes"
// wins over "no" when both appear.
func ParseAnswer(answer string) AnswerDirective {
	normalized := strings.ToLower(strings.TrimSpace(answer))
	directive := AnswerDirective{Text: normalized}

	if strings.Contains(normalized, "yes") {
		directive.ChooseYes = true
	} else if strings.Contains(normalized, "no") {
		directive.ChooseNo = true
	}
	return directive
}

// Review screen panels are MuiBox blocks identified by their h6 heading.
var reviewPanels = []struct {
	heading string
	assign  func(*models.ReviewSnapshot, string)
}{
	{"Resume", func(r *models.ReviewSnapshot, v string) { r.Resume = v }},
	{"Personal Details", func(r *models.ReviewSnapshot, v string) { r.PersonalDetails = v }},
	{"Education", func(r *models.ReviewSnapshot, v string) { r.Education = v }},
	{"Work Experience", func(r *models.ReviewSnapshot, v string) { r.Experience = v }},
	{"Notice Period", func(r *models.ReviewSnapshot, v string) { r.NoticePeriod = v }},
}

var applyingBannerPrefixes = []string{
	"You are Applying to",
	"You are applying to",
	"You’re Applying to",
	"You’re applying to",
	"You are applying",
}

// ExtractReviewSnapshot scrapes the review screen best-effort. Panels that
// are missing leave their field empty; the snapshot is never an error.
func ExtractReviewSnapshot(doc *goquery.Document) models.ReviewSnapshot {
	var snapshot models.ReviewSnapshot

	doc.Find("h2").EachWithBreak(func(_ int, h2 *goquery.Selection) bool {
		text := strings.TrimSpace(h2.Text())
		for _, prefix := range applyingBannerPrefixes {
			if strings.Contains(text, prefix) {
				snapshot.JobTitle = text
				return false
			}
		}
		return true
	})

	// First match in document order wins per panel; nested MuiBox wrappers
	// must not overwrite a panel already captured.
	captured := make(map[string]bool)
	doc.Find(questionBlockSelector).Each(func(_ int, block *goquery.Selection) {
		headings := block.Find("h6")
		if headings.Length() == 0 {
			return
		}
		for _, panel := range reviewPanels {
			if captured[panel.heading] {
				continue
			}
			if strings.Contains(headings.Text(), panel.heading) {
				captured[panel.heading] = true
				panel.assign(&snapshot, strings.TrimSpace(block.Text()))
			}
		}
	})

	return snapshot
}
