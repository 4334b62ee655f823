package format

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-poemgen/pkg/fragment"
)

var (
	htmlPolicyOnce sync.Once
	htmlPolicy     *bluemonday.Policy
)

func lineSanitizer() *bluemonday.Policy {
	htmlPolicyOnce.Do(func() {
		htmlPolicy = bluemonday.StrictPolicy()
	})
	return htmlPolicy
}

// HTML strips markup from every line before handing the sequence to an inner
// formatter, so fragments loaded from profiles can be embedded in a page.
type HTML struct {
	inner Formatter
}

// NewHTML wraps inner. A nil inner falls back to Plain with HTMLSeparator.
func NewHTML(inner Formatter) HTML {
	if inner == nil {
		inner = NewPlain(WithSeparator(HTMLSeparator))
	}
	return HTML{inner: inner}
}

// Format implements Formatter.
func (h HTML) Format(lines fragment.Sequence) string {
	policy := lineSanitizer()
	clean := make(fragment.Sequence, len(lines))
	for i, line := range lines {
		clean[i] = fragment.Fragment(strings.TrimSpace(policy.Sanitize(string(line))))
	}
	return h.inner.Format(clean)
}
