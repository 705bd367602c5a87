package scraper

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectPageLinksAndForms(t *testing.T) {
	page := `
		<html><body>
			<a href="/jobfeed">Feed</a>
			<a>no href, skipped</a>
			<form action="/login" method="post">
				<input name="email" type="text">
				<input name="password" type="password">
			</form>
		</body></html>`

	inspection := InspectPage(page, "https://www.iimjobs.com/login", "Login")

	assert.Equal(t, "https://www.iimjobs.com/login", inspection.CurrentURL)
	assert.Equal(t, "Login", inspection.PageTitle)
	assert.Equal(t, len(page), inspection.PageSourceLength)
	assert.False(t, inspection.HasNotFound)

	require.Len(t, inspection.NavigationLinks, 1)
	assert.Equal(t, "Feed", inspection.NavigationLinks[0].Text)
	assert.Equal(t, "/jobfeed", inspection.NavigationLinks[0].Href)

	require.Len(t, inspection.Forms, 1)
	assert.Equal(t, "/login", inspection.Forms[0].Action)
	assert.Equal(t, "post", inspection.Forms[0].Method)
	require.Len(t, inspection.Forms[0].Inputs, 2)
	assert.Equal(t, "email", inspection.Forms[0].Inputs[0].Name)
}

func TestInspectPageCapsLinks(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, `<a href="/page-%d">link</a>`, i)
	}
	b.WriteString("</body></html>")

	inspection := InspectPage(b.String(), "u", "t")
	assert.Len(t, inspection.NavigationLinks, maxInspectedLinks)
}

func TestInspectPageFlagsNotFound(t *testing.T) {
	inspection := InspectPage("<html><body>Page Not Found</body></html>", "u", "t")
	assert.True(t, inspection.HasNotFound)
}
