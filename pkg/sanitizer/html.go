package sanitizer

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	emailPolicy *bluemonday.Policy
	initOnce    sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// Formatting produced by markdown plus call-to-action buttons.
		emailPolicy = bluemonday.NewPolicy()
		emailPolicy.AllowStandardURLs()
		emailPolicy.AllowElements(
			"h1", "h2", "h3", "h4",
			"p", "br", "hr",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		emailPolicy.AllowAttrs("href").OnElements("a")
		emailPolicy.AllowAttrs("class").Matching(regexp.MustCompile(`^btn$`)).OnElements("a")
	})
}

// EmailHTML sanitizes an HTML fragment destined for an email body.
// Scripts, event handlers, styles and non http(s)/mailto links are removed;
// anchors keep their href and the "btn" class.
func EmailHTML(s string) string {
	initPolicies()
	return emailPolicy.Sanitize(s)
}
