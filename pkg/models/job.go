package models

import "strings"

// JobSummary represents one job posting extracted from a feed container.
// Every field except RawText and ExtractionMethod is best-effort: absence
// means the heuristic found nothing, not that the value is empty on the site.
type JobSummary struct {
	Title            string `json:"title,omitempty"`
	Company          string `json:"company,omitempty"`
	Experience       string `json:"experience,omitempty"`
	Location         string `json:"location,omitempty"`
	Salary           string `json:"salary,omitempty"`
	Link             string `json:"link,omitempty"`
	Posted           string `json:"posted,omitempty"`
	JobType          string `json:"job_type,omitempty"`
	Logo             string `json:"logo,omitempty"`
	RawText          string `json:"raw_text"`
	ExtractionMethod string `json:"extraction_method"`
}

// Identity returns the deduplication key for a summary: the (title, company)
// pair compared by exact equality after trimming.
func (s JobSummary) Identity() (string, string) {
	return strings.TrimSpace(s.Title), strings.TrimSpace(s.Company)
}

// HasIdentity reports whether at least one of title/company was extracted.
// A summary without either is discarded by the feed engine.
func (s JobSummary) HasIdentity() bool {
	title, company := s.Identity()
	return title != "" || company != ""
}

// JobDetail is the fixed-shape record extracted from a job detail page.
// Sparse-record semantics: fields the page did not yield are omitted from the
// JSON entirely, never serialized as empty strings or empty sequences.
type JobDetail struct {
	Title           string           `json:"title,omitempty"`
	Experience      string           `json:"experience,omitempty"`
	Location        string           `json:"location,omitempty"`
	Skills          []string         `json:"skills,omitempty"`
	Description     string           `json:"description,omitempty"`
	Requirements    []string         `json:"requirements,omitempty"`
	ApplicationInfo *ApplicationInfo `json:"application_info,omitempty"`
	JobURL          string           `json:"job_url"`
}

// ApplicationInfo describes the apply/save affordances found on a detail page.
type ApplicationInfo struct {
	CanApply        bool   `json:"can_apply"`
	CanSave         bool   `json:"can_save"`
	ApplyButtonText string `json:"apply_button_text,omitempty"`
	SaveButtonText  string `json:"save_button_text,omitempty"`
}

// ReviewSnapshot is the best-effort scrape of the application review screen.
// Missing panels leave the field absent.
type ReviewSnapshot struct {
	JobTitle        string `json:"job_title,omitempty"`
	Resume          string `json:"resume,omitempty"`
	PersonalDetails string `json:"personal_details,omitempty"`
	Education       string `json:"education,omitempty"`
	Experience      string `json:"experience,omitempty"`
	NoticePeriod    string `json:"notice_period,omitempty"`
}

// IsEmpty reports whether no panel of the review screen was scraped.
func (r ReviewSnapshot) IsEmpty() bool {
	return r == ReviewSnapshot{}
}

// PageInspection is the debug view of whatever page a session is currently on.
type PageInspection struct {
	CurrentURL       string        `json:"current_url"`
	PageTitle        string        `json:"page_title"`
	PageSourceLength int           `json:"page_source_length"`
	NavigationLinks  []PageLink    `json:"navigation_links,omitempty"`
	Forms            []FormSummary `json:"forms,omitempty"`
	HasNotFound      bool          `json:"has_404"`
	ScreenshotSaved  string        `json:"screenshot_saved,omitempty"`
}

// PageLink is a single anchor found during page inspection.
type PageLink struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// FormSummary describes one form element found during page inspection.
type FormSummary struct {
	Action string      `json:"action,omitempty"`
	Method string      `json:"method,omitempty"`
	Inputs []FormInput `json:"inputs"`
}

// FormInput is one input element inside an inspected form.
type FormInput struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
}
