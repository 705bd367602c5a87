package scraper

import (
	"context"
	"strings"
	"time"

	"hiredeck-utils/internal/browser"
	"hiredeck-utils/internal/config"
	"hiredeck-utils/internal/logging"
	"hiredeck-utils/internal/logging/types"
	"hiredeck-utils/pkg/models"
	"hiredeck-utils/pkg/utils"

	"github.com/PuerkitoBio/goquery"
)

// Method labels reported to clients so they can tell which rung of the
// fallback ladder produced the feed.
const (
	MethodDirectFeed = "direct_jobfeed_paginated"
	MethodJobsPage   = "jobs_page_paginated"
	MethodSearchPage = "search_page_paginated"
	MethodCategories = "multiple_categories"
)

// Engine drives feed collection against a live browser session. Extraction
// itself is pure; the engine only owns navigation, settling and the fallback
// ladder.
type Engine struct {
	config *config.Config
	logger types.Logger
}

// NewEngine creates a feed engine.
func NewEngine(cfg *config.Config) *Engine {
	return &Engine{
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// feedAttempt is one rung of the fallback ladder.
type feedAttempt struct {
	Method string
	Run    func() []models.JobSummary
}

// Collect walks the fallback ladder until a rung yields at least one job.
// An exhausted ladder is an extraction failure, never "zero jobs exist".
func (e *Engine) Collect(ctx context.Context, inst *browser.Instance, maxJobs, scrollPages int) ([]models.JobSummary, string, error) {
	attempts := []feedAttempt{
		{MethodDirectFeed, func() []models.JobSummary {
			return e.collectFrom(ctx, inst, e.config.Portal.FeedPath, maxJobs, scrollPages)
		}},
		{MethodJobsPage, func() []models.JobSummary {
			return e.collectFrom(ctx, inst, e.config.Portal.JobsPath, maxJobs, scrollPages)
		}},
		{MethodSearchPage, func() []models.JobSummary {
			return e.collectFrom(ctx, inst, e.config.Portal.SearchPath, maxJobs, scrollPages)
		}},
		{MethodCategories, func() []models.JobSummary {
			return e.collectCategories(ctx, inst, maxJobs)
		}},
	}

	jobs, method, ok := runLadder(attempts)
	if !ok {
		return nil, "", utils.NewExtractionNotFoundError("all feed strategies exhausted").WithURL(inst.CurrentURL())
	}

	e.logger.Info("Feed collected", map[string]interface{}{
		"count":  len(jobs),
		"method": method,
	})
	return jobs, method, nil
}

// runLadder runs attempts in order and stops at the first one that yields
// any jobs. Later rungs are never consulted after a hit.
func runLadder(attempts []feedAttempt) ([]models.JobSummary, string, bool) {
	for _, attempt := range attempts {
		if jobs := attempt.Run(); len(jobs) > 0 {
			return jobs, attempt.Method, true
		}
	}
	return nil, "", false
}

// collectFrom navigates to a feed endpoint and harvests it page by page.
// Navigation failure counts as an empty result so the ladder moves on.
func (e *Engine) collectFrom(ctx context.Context, inst *browser.Instance, path string, maxJobs, scrollPages int) []models.JobSummary {
	url := e.config.ResolveURL(path)
	if err := inst.Navigate(ctx, url); err != nil {
		e.logger.Warn("Feed endpoint unreachable", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return nil
	}
	time.Sleep(e.config.Portal.SettleDelay)

	return e.collectPaginated(inst, maxJobs, scrollPages)
}

// collectPaginated repeatedly extracts the current page, merges with dedup,
// and advances the feed until the target count is reached, the page budget
// runs out, or the feed stops advancing.
func (e *Engine) collectPaginated(inst *browser.Instance, maxJobs, scrollPages int) []models.JobSummary {
	var jobs []models.JobSummary

	for page := 0; page < scrollPages; page++ {
		pageJobs := e.extractCurrentPage(inst, maxJobs-len(jobs))
		jobs = MergeSummaries(jobs, pageJobs, maxJobs)

		e.logger.Debug("Feed page processed", map[string]interface{}{
			"page":  page + 1,
			"found": len(pageJobs),
			"total": len(jobs),
		})

		if len(jobs) >= maxJobs {
			break
		}
		if !AdvanceFeed(inst, e.config) {
			break
		}
	}

	return jobs
}

// collectCategories walks the configured category searches, merging results
// until the target count is reached.
func (e *Engine) collectCategories(ctx context.Context, inst *browser.Instance, maxJobs int) []models.JobSummary {
	var jobs []models.JobSummary

	for _, path := range e.config.Portal.CategoryPaths {
		if len(jobs) >= maxJobs {
			break
		}

		url := e.config.ResolveURL(path)
		if err := inst.Navigate(ctx, url); err != nil {
			e.logger.Warn("Category endpoint unreachable", map[string]interface{}{
				"url":   url,
				"error": err.Error(),
			})
			continue
		}
		time.Sleep(e.config.Portal.SettleDelay)

		categoryJobs := e.extractCurrentPage(inst, maxJobs-len(jobs))
		jobs = MergeSummaries(jobs, categoryJobs, maxJobs)
	}

	return jobs
}

// extractCurrentPage parses the live page's HTML and runs the pure
// extraction pipeline over it.
func (e *Engine) extractCurrentPage(inst *browser.Instance, maxJobs int) []models.JobSummary {
	pageHTML, err := inst.HTML()
	if err != nil {
		e.logger.Warn("Failed to read page HTML", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil
	}

	return ExtractFeed(doc, e.config.Portal.BaseURL, maxJobs)
}

// ExtractFeed runs container discovery and field extraction over a parsed
// document, returning at most maxJobs summaries.
func ExtractFeed(doc *goquery.Document, baseURL string, maxJobs int) []models.JobSummary {
	if maxJobs <= 0 {
		return nil
	}

	var jobs []models.JobSummary
	for _, container := range DiscoverContainers(doc, maxJobs) {
		if len(jobs) >= maxJobs {
			break
		}
		if summary, ok := ExtractSummary(container, baseURL); ok {
			jobs = append(jobs, summary)
		}
	}
	return jobs
}

// MergeSummaries appends incoming summaries that are not already present,
// comparing by the (title, company) identity. max caps the merged length;
// max <= 0 means unbounded.
func MergeSummaries(existing, incoming []models.JobSummary, max int) []models.JobSummary {
	for _, job := range incoming {
		if max > 0 && len(existing) >= max {
			break
		}
		if !containsIdentity(existing, job) {
			existing = append(existing, job)
		}
	}
	return existing
}

func containsIdentity(jobs []models.JobSummary, job models.JobSummary) bool {
	title, company := job.Identity()
	for _, existing := range jobs {
		existingTitle, existingCompany := existing.Identity()
		if existingTitle == title && existingCompany == company {
			return true
		}
	}
	return false
}
