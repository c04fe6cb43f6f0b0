// Package sanitize neutralizes potentially executable markup in
// user-supplied text before it is persisted.
package sanitize

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// URI schemes that must never survive, even in bare text.
	schemeRe = regexp.MustCompile(`(?i)(javascript|vbscript|data)\s*:`)
	// Inline event-handler attributes, e.g. onerror=, onclick =.
	eventAttrRe = regexp.MustCompile(`(?i)\bon\w+\s*=`)

	plainPolicy = bluemonday.StrictPolicy()
	richPolicy  = newRichPolicy()
)

func newRichPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "strong", "em", "b", "i", "u",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "blockquote",
		"table", "thead", "tbody", "tr", "th", "td",
		"code", "pre",
	)
	p.AllowStandardURLs()
	p.AllowAttrs("href", "target").OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.RequireNoFollowOnLinks(true)
	return p
}

// neutralize removes dangerous schemes and event-handler attributes.
// Removal can splice a new match together, so it loops to a fixed point.
func neutralize(s string) string {
	for {
		out := schemeRe.ReplaceAllString(s, "")
		out = eventAttrRe.ReplaceAllString(out, "")
		if out == s {
			return out
		}
		s = out
	}
}

// PlainText strips all markup from a plain-text field. Dangerous schemes and
// handler attributes are removed even when they appear outside of tags, so
// the output never contains them. Idempotent.
func PlainText(s string) string {
	return plainPolicy.Sanitize(neutralize(s))
}

// RichText filters formatted content down to an allow-list of structural and
// formatting tags. Script, style and similar elements are dropped together
// with their contents.
func RichText(s string) string {
	return richPolicy.Sanitize(neutralize(s))
}
