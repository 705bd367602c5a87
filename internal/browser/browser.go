package browser

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"hiredeck-utils/internal/config"
	"hiredeck-utils/internal/logging"
	"hiredeck-utils/internal/logging/types"
)

// Instance is one exclusively-owned browser engine with a single active page.
// A session owns exactly one Instance; the handle is never shared.
type Instance struct {
	Browser  *rod.Browser
	Page     *rod.Page
	launcher *launcher.Launcher
	config   *config.Config
	logger   types.Logger
	closed   bool
}

// NewInstance launches a fresh browser configured to minimize automation
// fingerprinting and opens a stealth page in it.
func NewInstance(cfg *config.Config) (*Instance, error) {
	logger := logging.GetGlobalLogger()

	l := launcher.New().
		Headless(cfg.Scraper.HeadlessMode).
		NoSandbox(true).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-gpu").
		Set("disable-dev-shm-usage")

	// Use system-installed Chrome/Chromium instead of downloading
	if chromePath := getSystemChromePath(); chromePath != "" {
		l = l.Bin(chromePath)
		logger.Debug("Using system Chrome browser", map[string]interface{}{
			"chrome_path": chromePath,
		})
	} else {
		logger.Warn("System Chrome not found, Rod will download browser", map[string]interface{}{})
	}

	if cfg.Scraper.UserAgent != "" {
		l = l.Set("user-agent", cfg.Scraper.UserAgent)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	inst := &Instance{
		Browser:  b,
		launcher: l,
		config:   cfg,
		logger:   logger,
	}

	page, err := inst.newStealthPage()
	if err != nil {
		inst.Close()
		return nil, fmt.Errorf("failed to create stealth page: %w", err)
	}
	inst.Page = page

	return inst, nil
}

// newStealthPage creates the instance's page with stealth mode enabled.
func (bi *Instance) newStealthPage() (*rod.Page, error) {
	var page *rod.Page
	var err error

	if bi.config.Scraper.StealthMode {
		page, err = stealth.Page(bi.Browser)
	} else {
		page, err = bi.Browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, err
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1920,
		Height:            1080,
		DeviceScaleFactor: 1,
	}); err != nil {
		bi.logger.Warn("Failed to set viewport", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if bi.config.Scraper.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent: bi.config.Scraper.UserAgent,
		}); err != nil {
			bi.logger.Warn("Failed to set user agent", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	// Mask the automation-detection navigator property on every document load
	if err := rod.Try(func() {
		page.MustEvalOnNewDocument(`Object.defineProperty(navigator, 'webdriver', {get: () => undefined})`)
	}); err != nil {
		bi.logger.Warn("Failed to inject webdriver override", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return page, nil
}

// Navigate loads the given URL and waits for the load event, bounded by the
// configured navigation timeout.
func (bi *Instance) Navigate(ctx context.Context, url string) error {
	navCtx, cancel := context.WithTimeout(ctx, bi.config.Portal.NavTimeout)
	defer cancel()

	err := rod.Try(func() {
		bi.Page.Context(navCtx).MustNavigate(url).MustWaitLoad()
	})
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	bi.logger.Debug("Navigated", map[string]interface{}{"url": url})
	return nil
}

// NavigateIfNeeded navigates only when the page is not already on the URL.
func (bi *Instance) NavigateIfNeeded(ctx context.Context, url string) error {
	if bi.CurrentURL() == url {
		return nil
	}
	return bi.Navigate(ctx, url)
}

// HTML returns the full HTML content of the current page.
func (bi *Instance) HTML() (string, error) {
	html, err := bi.Page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get page HTML: %w", err)
	}
	return html, nil
}

// CurrentURL returns the page's current address, or "" when unavailable.
func (bi *Instance) CurrentURL() string {
	info, err := bi.Page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// Title returns the page title, or "" when unavailable.
func (bi *Instance) Title() string {
	info, err := bi.Page.Info()
	if err != nil {
		return ""
	}
	return info.Title
}

// VisibleText returns the page's rendered text content, lowercased for
// marker matching. Empty string when evaluation fails.
func (bi *Instance) VisibleText() string {
	var text string
	err := rod.Try(func() {
		text = bi.Page.MustEval(`() => document.body ? document.body.innerText : ''`).Str()
	})
	if err != nil {
		return ""
	}
	return strings.ToLower(text)
}

// WaitForSelector waits for an element to appear on the page. Timing out is
// reported as an error; callers treat it as "not found".
func (bi *Instance) WaitForSelector(selector string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := rod.Try(func() {
		bi.Page.Context(ctx).MustElement(selector)
	})
	if err != nil {
		return fmt.Errorf("element with selector '%s' not found within timeout: %w", selector, err)
	}
	return nil
}

// ScrollHeight returns document.body.scrollHeight, 0 on failure.
func (bi *Instance) ScrollHeight() int {
	var height int
	err := rod.Try(func() {
		height = bi.Page.MustEval(`() => document.body.scrollHeight`).Int()
	})
	if err != nil {
		return 0
	}
	return height
}

// ScrollToBottom scrolls the viewport to the bottom of the document.
func (bi *Instance) ScrollToBottom() error {
	return rod.Try(func() {
		bi.Page.MustEval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	})
}

// ClickElement dispatches a JS click on the element, matching what the site
// expects from overlay-covered controls where a trusted click can miss.
func ClickElement(el *rod.Element) error {
	return rod.Try(func() {
		el.MustEval(`() => this.click()`)
	})
}

// ElementClickable reports whether an element is visible and not disabled.
func ElementClickable(el *rod.Element) bool {
	visible, err := el.Visible()
	if err != nil || !visible {
		return false
	}
	disabled, err := el.Attribute("disabled")
	if err != nil {
		return false
	}
	return disabled == nil
}

// Screenshot captures the current page as PNG bytes.
func (bi *Instance) Screenshot() ([]byte, error) {
	data, err := bi.Page.Screenshot(false, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}
	return data, nil
}

// Close terminates the browser and its launcher. Safe to call more than once.
func (bi *Instance) Close() {
	if bi.closed {
		return
	}
	bi.closed = true

	if bi.Browser != nil {
		_ = rod.Try(func() {
			bi.Browser.MustClose()
		})
	}
	if bi.launcher != nil {
		bi.launcher.Cleanup()
	}
	bi.logger.Debug("Browser instance closed")
}

// getSystemChromePath finds the system-installed Chrome/Chromium browser
func getSystemChromePath() string {
	// Environment variables first (container configuration)
	if chromeBin := os.Getenv("CHROME_BIN"); chromeBin != "" {
		if _, err := os.Stat(chromeBin); err == nil {
			return chromeBin
		}
	}

	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	commonPaths := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/opt/google/chrome/chrome",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"C:\\Program Files\\Google\\Chrome\\Application\\chrome.exe",
		"C:\\Program Files (x86)\\Google\\Chrome\\Application\\chrome.exe",
	}

	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
