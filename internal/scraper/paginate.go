package scraper

import (
	"time"

	"hiredeck-utils/internal/browser"
	"hiredeck-utils/internal/config"

	"github.com/go-rod/rod"
)

// Probe timeout per pagination selector. These lookups are expected to miss
// on most pages, so they must not wait the full element timeout each.
const paginationProbeTimeout = 1 * time.Second

// Pagination selectors. XPath entries match on visible button text, CSS
// entries on classic pagination markup.
var (
	nextXPaths = []string{
		"//button[contains(text(), 'Next')]",
		"//a[contains(text(), 'Next')]",
		"//button[@title='Next']",
		"//a[@title='Next']",
	}
	nextCSSSelectors = []string{
		".next-page",
		".pagination-next",
		"[aria-label='Next']",
	}

	loadMoreXPaths = []string{
		"//button[contains(text(), 'Load more')]",
		"//button[contains(text(), 'Show more')]",
		"//a[contains(text(), 'Load more')]",
	}
	loadMoreCSSSelectors = []string{
		".load-more",
		".show-more",
	}
)

// AdvanceFeed tries to bring more feed content into the page, in order: a
// next-page control, infinite scroll, then a load-more control. It returns
// true when any strategy worked and false when the feed is exhausted.
func AdvanceFeed(inst *browser.Instance, cfg *config.Config) bool {
	settle := cfg.Portal.SettleDelay

	if clickFirstControl(inst, nextXPaths, nextCSSSelectors) {
		time.Sleep(settle)
		return true
	}

	before := inst.ScrollHeight()
	if err := inst.ScrollToBottom(); err == nil {
		time.Sleep(settle)
		if inst.ScrollHeight() > before {
			return true
		}
	}

	if clickFirstControl(inst, loadMoreXPaths, loadMoreCSSSelectors) {
		time.Sleep(settle)
		return true
	}

	return false
}

// clickFirstControl probes each selector and clicks the first control that is
// present, visible and enabled.
func clickFirstControl(inst *browser.Instance, xpaths, cssSelectors []string) bool {
	for _, xpath := range xpaths {
		if el := probeX(inst, xpath); el != nil && clickControl(el) {
			return true
		}
	}
	for _, selector := range cssSelectors {
		if el := probe(inst, selector); el != nil && clickControl(el) {
			return true
		}
	}
	return false
}

func clickControl(el *rod.Element) bool {
	if !browser.ElementClickable(el) {
		return false
	}
	return browser.ClickElement(el) == nil
}

func probe(inst *browser.Instance, selector string) *rod.Element {
	el, err := inst.Page.Timeout(paginationProbeTimeout).Element(selector)
	if err != nil {
		return nil
	}
	return el
}

func probeX(inst *browser.Instance, xpath string) *rod.Element {
	el, err := inst.Page.Timeout(paginationProbeTimeout).ElementX(xpath)
	if err != nil {
		return nil
	}
	return el
}
