package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var emailPolicy = sync.OnceValue(func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "hr",
		"h1", "h2", "h3", "h4",
		"strong", "b", "em", "i", "del",
		"ul", "ol", "li",
		"code", "pre", "blockquote",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	p.RequireNoFollowOnLinks(true)
	return p
})

// EmailHTML keeps basic formatting and links. Scripts, styles, event handlers,
// images and links with other schemes are removed.
func EmailHTML(s string) string {
	return emailPolicy().Sanitize(s)
}
