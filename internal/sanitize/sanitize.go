// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sanitize strips dangerous markup from legacy HTML content.
// Rich-text fields created before the structured document format arrive as
// raw HTML strings; those pass through the renderer verbatim, so they are
// sanitized here first. Safe markup is preserved byte-for-byte.
package sanitize

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the shared bluemonday policy, safe for concurrent use.
// UGC allows the formatting the old editor produced (headings, lists,
// links, images, tables) while stripping scripts and event handlers.
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	// Legacy content opens external links in new tabs.
	p.AllowAttrs("target", "rel").OnElements("a")
	// Inline alignment and color styling from the old editor.
	p.AllowAttrs("style").OnElements("p", "span", "div", "td", "th")
	return p
}

// textPolicy strips every tag, leaving only text content.
var textPolicy = bluemonday.StrictPolicy()

// HTML returns the input with unsafe markup removed.
func HTML(s string) string {
	return policy.Sanitize(s)
}

// Text returns the input with all markup removed, entities decoded. Used
// where legacy HTML feeds word-based measures like read time.
func Text(s string) string {
	return html.UnescapeString(textPolicy.Sanitize(s))
}
