package scraper

import (
	"context"
	"strings"
	"time"

	"hiredeck-utils/internal/browser"
	"hiredeck-utils/pkg/models"
	"hiredeck-utils/pkg/utils"

	"github.com/PuerkitoBio/goquery"
)

// Detail page anchors. Unlike the feed, the detail layout is stable enough
// for fixed selectors; MuiPaper is the portal's content panel class.
const (
	detailTitleSelector  = "div.job-header h1"
	headerSpanSelector   = "div.job-header span"
	skillTagSelector     = "div.job-header + div span"
	descriptionSelector  = "div[class*='MuiPaper-root'] p"
	requirementsSelector = "div[class*='MuiPaper-root'] li"
)

// FetchDetail navigates to a job detail page and extracts its record. An
// empty record is an extraction failure.
func (e *Engine) FetchDetail(ctx context.Context, inst *browser.Instance, jobURL string) (*models.JobDetail, error) {
	if err := inst.Navigate(ctx, jobURL); err != nil {
		return nil, utils.NewAutomationError("failed to open job page: " + err.Error())
	}
	time.Sleep(e.config.Portal.SettleDelay)

	if err := inst.WaitForSelector("body", e.config.Portal.ElementTimeout); err != nil {
		return nil, utils.NewAutomationError("job page never rendered").WithURL(inst.CurrentURL())
	}

	pageHTML, err := inst.HTML()
	if err != nil {
		return nil, utils.NewAutomationError("failed to read job page: " + err.Error())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, utils.NewAutomationError("failed to parse job page: " + err.Error())
	}

	detail := ExtractDetail(doc, inst.CurrentURL())
	if detail == nil {
		return nil, utils.NewExtractionNotFoundError("failed to extract job details").WithURL(inst.CurrentURL())
	}
	return detail, nil
}

// ExtractDetail pulls the fixed-shape detail record out of a parsed job
// page. Fields the page does not yield stay zero; a page that yields nothing
// at all returns nil.
func ExtractDetail(doc *goquery.Document, currentURL string) *models.JobDetail {
	detail := &models.JobDetail{JobURL: currentURL}

	detail.Title = strings.TrimSpace(doc.Find(detailTitleSelector).First().Text())
	if detail.Title == "" {
		detail.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	// The header spans carry experience then location, by position only.
	// There is nothing structural to distinguish them; if the portal reorders
	// the header this mapping silently misassigns both.
	spans := doc.Find(headerSpanSelector)
	if spans.Length() >= 2 {
		detail.Experience = strings.TrimSpace(spans.Eq(0).Text())
		detail.Location = strings.TrimSpace(spans.Eq(1).Text())
	}

	doc.Find(skillTagSelector).Each(func(_ int, tag *goquery.Selection) {
		text := strings.TrimSpace(tag.Text())
		if strings.HasPrefix(text, "#") {
			detail.Skills = append(detail.Skills, text)
		}
	})

	var paragraphs []string
	doc.Find(descriptionSelector).Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	detail.Description = strings.Join(paragraphs, "\n")

	doc.Find(requirementsSelector).Each(func(_ int, li *goquery.Selection) {
		if text := strings.TrimSpace(li.Text()); text != "" {
			detail.Requirements = append(detail.Requirements, text)
		}
	})

	detail.ApplicationInfo = extractApplicationInfo(doc)

	if isDetailEmpty(detail) {
		return nil
	}
	return detail
}

// extractApplicationInfo inspects the page's buttons for apply and save
// affordances. The save button's label falls back to its aria-label since
// the portal renders it icon-only in some layouts.
func extractApplicationInfo(doc *goquery.Document) *models.ApplicationInfo {
	info := &models.ApplicationInfo{}

	doc.Find("button").Each(func(_ int, btn *goquery.Selection) {
		text := strings.TrimSpace(btn.Text())
		if strings.Contains(text, "Apply") && !info.CanApply {
			info.CanApply = true
			info.ApplyButtonText = text
		}
		if !info.CanSave {
			if strings.Contains(text, "Save") {
				info.CanSave = true
				info.SaveButtonText = text
			} else if label, _ := btn.Attr("aria-label"); strings.Contains(label, "Save") {
				info.CanSave = true
				info.SaveButtonText = label
			}
		}
	})

	return info
}

func isDetailEmpty(detail *models.JobDetail) bool {
	return detail.Title == "" &&
		detail.Description == "" &&
		len(detail.Skills) == 0 &&
		len(detail.Requirements) == 0 &&
		!detail.ApplicationInfo.CanApply &&
		!detail.ApplicationInfo.CanSave
}
