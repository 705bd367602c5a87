package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"hiredeck-utils/internal/browser"
	"hiredeck-utils/internal/config"
	"hiredeck-utils/internal/diag"
	"hiredeck-utils/internal/logging"
	"hiredeck-utils/internal/scraper"
	"hiredeck-utils/internal/session"
	"hiredeck-utils/pkg/models"
	"hiredeck-utils/pkg/utils"

	"github.com/labstack/echo/v4"
)

const (
	defaultMaxJobs     = 100
	defaultScrollPages = 5
)

// ListJobsHandler runs the feed fallback ladder on the session's browser and
// returns the deduplicated result. An exhausted ladder answers 404 with
// navigation context so the caller can tell what page the run died on.
func ListJobsHandler(cfg *config.Config, sessions *session.Manager, engine *scraper.Engine, redisClient *utils.RedisClient, snapshotter diag.Snapshotter) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := logging.GetGlobalLogger()

		var req models.ListJobsRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
		if req.MaxJobs == 0 {
			req.MaxJobs = defaultMaxJobs
		}
		if req.ScrollPages == 0 {
			req.ScrollPages = defaultScrollPages
		}

		sess, err := sessions.Get(req.SessionID)
		if err != nil {
			return respondError(c, err)
		}

		var (
			jobs   []models.JobSummary
			method string
			debug  *models.DebugInfo
		)
		doErr := sess.Do(func(inst *browser.Instance) error {
			var collectErr error
			jobs, method, collectErr = engine.Collect(c.Request().Context(), inst, req.MaxJobs, req.ScrollPages)
			if collectErr != nil {
				var ce *utils.CustomError
				if errors.As(collectErr, &ce) && ce.Kind == utils.KindNotFound {
					debug = captureDebug(inst, snapshotter, "feed_debug")
				}
			}
			return collectErr
		})
		if doErr != nil {
			return respondErrorWithDebug(c, doErr, debug)
		}

		if redisClient != nil {
			snapshot := &utils.FeedSnapshot{
				SessionID: req.SessionID,
				Method:    method,
				Jobs:      jobs,
				FetchedAt: time.Now(),
			}
			if err := redisClient.StoreFeedSnapshot(context.Background(), snapshot); err != nil {
				logger.Debug("Feed snapshot not cached", map[string]interface{}{
					"session_id": req.SessionID,
					"error":      err.Error(),
				})
			}
		}

		return c.JSON(http.StatusOK, models.JobsResponse{
			Jobs:   jobs,
			Count:  len(jobs),
			Method: method,
		})
	}
}

// CachedJobsHandler serves the session's last successful feed run from the
// cache without touching the browser. 404 when nothing is cached.
func CachedJobsHandler(sessions *session.Manager, redisClient *utils.RedisClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CachedJobsRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		if _, err := sessions.Get(req.SessionID); err != nil {
			return respondError(c, err)
		}

		if redisClient == nil {
			return respondError(c, utils.NewExtractionNotFoundError("feed cache disabled"))
		}

		snapshot, err := redisClient.GetFeedSnapshot(c.Request().Context(), req.SessionID)
		if err != nil {
			return respondError(c, utils.NewExtractionNotFoundError("no cached feed for session"))
		}

		return c.JSON(http.StatusOK, models.JobsResponse{
			Jobs:   snapshot.Jobs,
			Count:  len(snapshot.Jobs),
			Method: snapshot.Method + "_cached",
		})
	}
}

// JobDetailsHandler extracts the fixed-shape record from one job page. The
// job is addressed by URL, or by portal id resolved against the base origin.
func JobDetailsHandler(cfg *config.Config, sessions *session.Manager, engine *scraper.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.JobDetailsRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		jobURL := req.JobURL
		if jobURL == "" && req.JobID != "" {
			jobURL = cfg.ResolveURL("/job/" + req.JobID)
		}
		if jobURL == "" {
			return respondError(c, utils.NewValidationError("either job_url or job_id is required"))
		}

		sess, err := sessions.Get(req.SessionID)
		if err != nil {
			return respondError(c, err)
		}

		var detail *models.JobDetail
		var finalURL string
		doErr := sess.Do(func(inst *browser.Instance) error {
			var fetchErr error
			detail, fetchErr = engine.FetchDetail(c.Request().Context(), inst, jobURL)
			finalURL = inst.CurrentURL()
			return fetchErr
		})
		if doErr != nil {
			return respondError(c, doErr)
		}

		return c.JSON(http.StatusOK, models.JobDetailsResponse{
			JobDetails: detail,
			Status:     "success",
			URL:        finalURL,
		})
	}
}

// DebugPageHandler reports what page the session is currently on, with a
// diagnostic screenshot when captures are enabled.
func DebugPageHandler(sessions *session.Manager, snapshotter diag.Snapshotter) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.DebugPageRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		sess, err := sessions.Get(req.SessionID)
		if err != nil {
			return respondError(c, err)
		}

		var inspection models.PageInspection
		doErr := sess.Do(func(inst *browser.Instance) error {
			pageHTML, err := inst.HTML()
			if err != nil {
				return utils.NewAutomationError("failed to read page: " + err.Error())
			}

			inspection = scraper.InspectPage(pageHTML, inst.CurrentURL(), inst.Title())
			if png, err := inst.Screenshot(); err == nil {
				inspection.ScreenshotSaved = snapshotter.Save("debug_page", png)
			}
			return nil
		})
		if doErr != nil {
			return respondError(c, doErr)
		}

		return c.JSON(http.StatusOK, inspection)
	}
}

// captureDebug collects navigation context plus a best-effort screenshot at
// the failure boundary.
func captureDebug(inst *browser.Instance, snapshotter diag.Snapshotter, label string) *models.DebugInfo {
	debug := &models.DebugInfo{
		CurrentURL: inst.CurrentURL(),
		PageTitle:  inst.Title(),
	}
	if png, err := inst.Screenshot(); err == nil {
		debug.Screenshot = snapshotter.Save(label, png)
	}
	return debug
}
