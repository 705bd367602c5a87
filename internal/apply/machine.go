package apply

import (
	"context"
	"net/http"
	"strings"
	"time"

	"hiredeck-utils/internal/browser"
	"hiredeck-utils/internal/config"
	"hiredeck-utils/internal/logging"
	"hiredeck-utils/internal/logging/types"
	"hiredeck-utils/internal/scraper"
	"hiredeck-utils/pkg/models"
	"hiredeck-utils/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
)

// Result statuses reported to clients. Partial success means the flow landed
// on a screen the machine could not classify, or reached review without
// submitting; the application may or may not have gone through.
const (
	StatusSuccess     = "success"
	StatusFormPresent = "form_present"
	StatusPartial     = "partial_success"
	StatusFailed      = "failed"
)

// Control XPaths for the application flow. Clicking always goes through the
// JS path since the portal renders overlay layers over its buttons.
const (
	applyButtonXPath = "//button[contains(text(),'Apply')]"
	submitXPath      = "//button[contains(text(),'Review & Submit') or contains(text(),'Submit') or contains(text(),'Send Application')]"
	advanceXPath     = "//button[contains(.,'Next') or contains(.,'Review') or contains(.,'Submit')]"
	yesInputXPath    = "//label[contains(., 'Yes')]/following::input[@type='radio' or @type='checkbox'][1]"
	noInputXPath     = "//label[contains(., 'No')]/following::input[@type='radio' or @type='checkbox'][1]"
	textInputXPath   = "//input[@type='text' or not(@type)]"
	saveButtonXPath  = "//button[contains(., 'Save')]"
)

// CSS fallbacks for the save control.
var saveCSSSelectors = []string{
	".save-btn",
	"[class*='save']",
	"input[value*='Save']",
	"a[href*='save']",
}

// Result is the outcome of one application flow step.
type Result struct {
	Status        string
	Message       string
	CurrentURL    string
	HTTPStatus    int
	FormQuestions []string
	ReviewData    *models.ReviewSnapshot
}

// Machine drives the multi-step application flow on a live session. Each
// entry point re-detects the page state rather than trusting that the
// previous step left the browser where it expected.
type Machine struct {
	config *config.Config
	logger types.Logger
}

// NewMachine creates an application flow machine.
func NewMachine(cfg *config.Config) *Machine {
	return &Machine{
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// Apply clicks the job's apply button and classifies the screen that
// follows: a question form, a review screen, or something unrecognized.
func (m *Machine) Apply(ctx context.Context, inst *browser.Instance, jobURL string) (*Result, error) {
	if err := m.openJobPage(ctx, inst, jobURL); err != nil {
		return nil, err
	}

	applyButton, err := inst.Page.Timeout(m.config.Portal.ElementTimeout).ElementX(applyButtonXPath)
	if err != nil || browser.ClickElement(applyButton) != nil {
		return &Result{
			Status:     StatusFailed,
			Message:    "Could not find or click apply button",
			CurrentURL: inst.CurrentURL(),
			HTTPStatus: http.StatusBadRequest,
		}, nil
	}
	time.Sleep(m.config.Portal.SettleDelay)

	doc, pageText, err := m.readPage(inst)
	if err != nil {
		return nil, err
	}

	if HasQuestionFormMarker(pageText) {
		return &Result{
			Status:        StatusFormPresent,
			Message:       "Form detected before review",
			CurrentURL:    inst.CurrentURL(),
			HTTPStatus:    http.StatusOK,
			FormQuestions: HarvestQuestions(doc),
		}, nil
	}

	if HasReviewMarker(pageText) {
		return m.reviewAndSubmit(inst)
	}

	return &Result{
		Status:     StatusPartial,
		Message:    "No form or review screen detected",
		CurrentURL: inst.CurrentURL(),
		HTTPStatus: http.StatusPartialContent,
	}, nil
}

// FillAnswers fills the question form with the client's answers and advances
// the flow. Only the first answer drives the controls: it is routed to the
// yes/no binary if it contains one, and typed into the first free-text field
// either way.
func (m *Machine) FillAnswers(ctx context.Context, inst *browser.Instance, jobURL string, answers []string) (*Result, error) {
	if err := m.openJobPage(ctx, inst, jobURL); err != nil {
		return nil, err
	}

	directive := ParseAnswer(answers[0])
	filled := 0

	if directive.ChooseYes {
		if m.clickBinaryInput(inst, yesInputXPath) {
			filled++
		}
	} else if directive.ChooseNo {
		if m.clickBinaryInput(inst, noInputXPath) {
			filled++
		}
	}

	if m.typeIntoTextField(inst, directive.Text) {
		filled++
	}

	m.logger.Debug("Form fields filled", map[string]interface{}{
		"filled_count": filled,
	})

	if advance, err := inst.Page.Timeout(m.config.Portal.ElementTimeout).ElementX(advanceXPath); err == nil {
		if browser.ClickElement(advance) == nil {
			time.Sleep(m.config.Portal.SettleDelay)
		}
	}

	return m.reviewAndSubmit(inst)
}

// SaveJob clicks the job's save control.
func (m *Machine) SaveJob(ctx context.Context, inst *browser.Instance, jobURL string) (*Result, error) {
	if err := m.openJobPage(ctx, inst, jobURL); err != nil {
		return nil, err
	}

	if m.clickSaveControl(inst) {
		return &Result{
			Status:     StatusSuccess,
			Message:    "Job saved successfully",
			CurrentURL: inst.CurrentURL(),
			HTTPStatus: http.StatusOK,
		}, nil
	}

	return &Result{
		Status:     StatusFailed,
		Message:    "Could not find or click save button",
		CurrentURL: inst.CurrentURL(),
		HTTPStatus: http.StatusBadRequest,
	}, nil
}

// reviewAndSubmit scrapes the review screen best-effort and tries to submit
// the application. Failing to submit downgrades to partial success; the
// review data still goes back to the client.
func (m *Machine) reviewAndSubmit(inst *browser.Instance) (*Result, error) {
	time.Sleep(2 * time.Second)

	doc, _, err := m.readPage(inst)
	if err != nil {
		return nil, err
	}
	snapshot := ExtractReviewSnapshot(doc)

	submitted := false
	if submit, err := inst.Page.Timeout(m.config.Portal.ElementTimeout).ElementX(submitXPath); err == nil {
		if browser.ElementClickable(submit) && browser.ClickElement(submit) == nil {
			time.Sleep(2 * time.Second)
			submitted = true
		}
	}

	result := &Result{
		CurrentURL: inst.CurrentURL(),
		ReviewData: &snapshot,
	}
	if submitted {
		result.Status = StatusSuccess
		result.Message = "Application submitted and review submitted"
		result.HTTPStatus = http.StatusOK
	} else {
		result.Status = StatusPartial
		result.Message = "Review page loaded but not submitted"
		result.HTTPStatus = http.StatusPartialContent
	}
	return result, nil
}

// openJobPage brings the session to the job page unless it is already there.
func (m *Machine) openJobPage(ctx context.Context, inst *browser.Instance, jobURL string) error {
	if inst.CurrentURL() == jobURL {
		return nil
	}
	if err := inst.Navigate(ctx, jobURL); err != nil {
		return utils.NewAutomationError("failed to open job page: " + err.Error())
	}
	time.Sleep(m.config.Portal.SettleDelay)
	return nil
}

// readPage parses the live page into a document plus its rendered text.
func (m *Machine) readPage(inst *browser.Instance) (*goquery.Document, string, error) {
	pageHTML, err := inst.HTML()
	if err != nil {
		return nil, "", utils.NewAutomationError("failed to read page: " + err.Error()).WithURL(inst.CurrentURL())
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, "", utils.NewAutomationError("failed to parse page: " + err.Error()).WithURL(inst.CurrentURL())
	}
	return doc, scraper.ContainerText(doc.Selection), nil
}

// clickBinaryInput clicks the radio or checkbox that follows the matching
// label.
func (m *Machine) clickBinaryInput(inst *browser.Instance, xpath string) bool {
	input, err := inst.Page.Timeout(m.config.Portal.ElementTimeout).ElementX(xpath)
	if err != nil {
		return false
	}
	return browser.ClickElement(input) == nil
}

// typeIntoTextField finds the first textarea, falling back to the first text
// input, and types the answer into it.
func (m *Machine) typeIntoTextField(inst *browser.Instance, text string) bool {
	field, err := inst.Page.Timeout(m.config.Portal.ElementTimeout).Element("textarea")
	if err != nil {
		field, err = inst.Page.Timeout(m.config.Portal.ElementTimeout).ElementX(textInputXPath)
		if err != nil {
			return false
		}
	}

	if err := field.ScrollIntoView(); err != nil {
		return false
	}
	if err := field.SelectAllText(); err == nil {
		_ = field.Input("")
	}
	return field.Input(text) == nil
}

// clickSaveControl probes the save control variants and clicks the first
// enabled one whose content actually says save.
func (m *Machine) clickSaveControl(inst *browser.Instance) bool {
	if el, err := inst.Page.Timeout(m.config.Portal.ElementTimeout).ElementX(saveButtonXPath); err == nil {
		if m.clickIfSave(el) {
			return true
		}
	}

	for _, selector := range saveCSSSelectors {
		elements, err := inst.Page.Elements(selector)
		if err != nil {
			continue
		}
		for _, el := range elements {
			if m.clickIfSave(el) {
				return true
			}
		}
	}
	return false
}

func (m *Machine) clickIfSave(el *rod.Element) bool {
	text, err := el.Text()
	if err != nil || !strings.Contains(strings.ToLower(text), "save") {
		return false
	}
	if !browser.ElementClickable(el) {
		return false
	}
	if browser.ClickElement(el) != nil {
		return false
	}
	time.Sleep(2 * time.Second)
	return true
}
