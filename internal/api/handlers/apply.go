package handlers

import (
	"hiredeck-utils/internal/apply"
	"hiredeck-utils/internal/browser"
	"hiredeck-utils/internal/logging"
	"hiredeck-utils/internal/session"
	"hiredeck-utils/pkg/models"

	"github.com/labstack/echo/v4"
)

// ApplyJobHandler starts the application flow for a job and reports which
// screen the flow landed on.
func ApplyJobHandler(sessions *session.Manager, machine *apply.Machine) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.ApplyRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		sess, err := sessions.Get(req.SessionID)
		if err != nil {
			return respondError(c, err)
		}

		var result *apply.Result
		doErr := sess.Do(func(inst *browser.Instance) error {
			var applyErr error
			result, applyErr = machine.Apply(c.Request().Context(), inst, req.JobURL)
			return applyErr
		})
		if doErr != nil {
			return respondError(c, doErr)
		}

		logging.GetGlobalLogger().Info("Apply flow finished", map[string]interface{}{
			"request_id": requestID(c),
			"status":     result.Status,
			"job_url":    req.JobURL,
		})

		return c.JSON(result.HTTPStatus, applyResponse(result))
	}
}

// FillFormHandler answers a pre-submission question form and advances the
// flow toward review and submission.
func FillFormHandler(sessions *session.Manager, machine *apply.Machine) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.FillFormRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		sess, err := sessions.Get(req.SessionID)
		if err != nil {
			return respondError(c, err)
		}

		var result *apply.Result
		doErr := sess.Do(func(inst *browser.Instance) error {
			var fillErr error
			result, fillErr = machine.FillAnswers(c.Request().Context(), inst, req.JobURL, req.Answers)
			return fillErr
		})
		if doErr != nil {
			return respondError(c, doErr)
		}

		return c.JSON(result.HTTPStatus, applyResponse(result))
	}
}

// SaveJobHandler bookmarks a job on the portal.
func SaveJobHandler(sessions *session.Manager, machine *apply.Machine) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.SaveJobRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		sess, err := sessions.Get(req.SessionID)
		if err != nil {
			return respondError(c, err)
		}

		var result *apply.Result
		doErr := sess.Do(func(inst *browser.Instance) error {
			var saveErr error
			result, saveErr = machine.SaveJob(c.Request().Context(), inst, req.JobURL)
			return saveErr
		})
		if doErr != nil {
			return respondError(c, doErr)
		}

		return c.JSON(result.HTTPStatus, models.SaveJobResponse{
			Status:     result.Status,
			Message:    result.Message,
			CurrentURL: result.CurrentURL,
		})
	}
}

func applyResponse(result *apply.Result) models.ApplyResponse {
	return models.ApplyResponse{
		Status:        result.Status,
		Message:       result.Message,
		CurrentURL:    result.CurrentURL,
		FormQuestions: result.FormQuestions,
		ReviewData:    result.ReviewData,
	}
}
