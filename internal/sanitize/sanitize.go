// Package sanitize strips markup from user-supplied free text before it is
// stored. Class titles, descriptions and teacher bios are rendered by web
// and mobile clients that must never receive live HTML from another user.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared strict policy, initializing it on first call.
// A bluemonday policy is safe for concurrent use once built.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text removes every HTML tag (and the content of script/style elements)
// from input and trims surrounding whitespace. The result is plain text:
// entities escaped by the sanitizer are decoded again because clients
// render these fields as text, not markup.
func Text(input string) string {
	if input == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(getPolicy().Sanitize(input)))
}

// OptionalText applies Text to a pointer field. A nil input, or one that is
// empty after stripping, yields nil.
func OptionalText(input *string) *string {
	if input == nil {
		return nil
	}
	out := Text(*input)
	if out == "" {
		return nil
	}
	return &out
}
