package scraper

import (
	"strings"

	"hiredeck-utils/pkg/models"

	"github.com/PuerkitoBio/goquery"
)

// maxInspectedLinks bounds the anchor dump in a page inspection.
const maxInspectedLinks = 30

// InspectPage summarizes a page for debugging: where the session is, what it
// links to, what forms it renders, and whether it smells like an error page.
func InspectPage(pageHTML, currentURL, pageTitle string) models.PageInspection {
	inspection := models.PageInspection{
		CurrentURL:       currentURL,
		PageTitle:        pageTitle,
		PageSourceLength: len(pageHTML),
		HasNotFound: strings.Contains(pageHTML, "404") ||
			strings.Contains(strings.ToLower(pageHTML), "not found"),
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return inspection
	}

	doc.Find("a").EachWithBreak(func(i int, a *goquery.Selection) bool {
		if i >= maxInspectedLinks {
			return false
		}
		if href, exists := a.Attr("href"); exists {
			inspection.NavigationLinks = append(inspection.NavigationLinks, models.PageLink{
				Text: strings.TrimSpace(a.Text()),
				Href: href,
			})
		}
		return true
	})

	doc.Find("form").Each(func(_ int, form *goquery.Selection) {
		summary := models.FormSummary{}
		summary.Action, _ = form.Attr("action")
		summary.Method, _ = form.Attr("method")

		form.Find("input").Each(func(_ int, input *goquery.Selection) {
			field := models.FormInput{}
			field.Name, _ = input.Attr("name")
			field.Type, _ = input.Attr("type")
			summary.Inputs = append(summary.Inputs, field)
		})

		inspection.Forms = append(inspection.Forms, summary)
	})

	return inspection
}
