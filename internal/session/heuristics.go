package session

import "strings"

// Markers that appear on the portal only after a successful login. The URL
// check catches the dashboard redirect; the text markers cover layouts that
// keep the login URL but render the authenticated chrome.
var authTextMarkers = []string{"logout", "profile"}

// IsAuthenticatedPage reports whether the page at currentURL with the given
// visible text looks like a logged-in portal page. Matching is
// case-insensitive on both inputs.
func IsAuthenticatedPage(currentURL, pageText string) bool {
	if strings.Contains(strings.ToLower(currentURL), "dashboard") {
		return true
	}

	lower := strings.ToLower(pageText)
	for _, marker := range authTextMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
