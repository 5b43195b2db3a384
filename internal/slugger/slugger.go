// Package slugger derives URL-safe identifiers using the source platform's
// exact rules, so migrated content keeps its historical URLs.
package slugger

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	disallowed   = regexp.MustCompile(`[:\/\?#\[\]@!$&'()*+,;=\\%<>\|\^~£"]`)
	separators   = regexp.MustCompile(`(\s|\.)`)
	hyphenRuns   = regexp.MustCompile(`-+`)
	numberSuffix = regexp.MustCompile(`-\d*$`)
)

// reserved lists system and administrative route names that cannot be used
// as content slugs.
var reserved = map[string]struct{}{
	"ghost": {}, "ghost-admin": {}, "admin": {}, "wp-admin": {},
	"wp-login": {}, "dashboard": {}, "logout": {}, "login": {},
	"signin": {}, "signup": {}, "signout": {}, "register": {},
	"archive": {}, "archives": {}, "category": {}, "categories": {},
	"tag": {}, "tags": {}, "page": {}, "pages": {}, "post": {},
	"posts": {}, "user": {}, "users": {}, "rss": {},
}

// Generate derives a lowercase hyphen-separated slug from free text.
// Reserved route names get a "-post" suffix so they never shadow system URLs.
func Generate(text string) string {
	slug := disallowed.ReplaceAllString(text, "")
	slug = separators.ReplaceAllString(slug, "-")
	slug = hyphenRuns.ReplaceAllString(slug, "-")
	slug = strings.ToLower(slug)
	slug = strings.TrimSuffix(slug, "-")

	if _, ok := reserved[slug]; ok {
		slug += "-post"
	}
	return slug
}

// Tracker resolves slug collisions within a single conversion run.
// It is not safe for concurrent use; each run owns its own Tracker.
type Tracker struct {
	taken map[string]struct{}
}

// NewTracker returns an empty collision tracker.
func NewTracker() *Tracker {
	return &Tracker{taken: map[string]struct{}{}}
}

// Claim reserves candidate, suffixing "-2", "-3", ... until free. Any
// existing trailing numeric suffix is stripped before renumbering.
func (t *Tracker) Claim(candidate string) string {
	if _, exists := t.taken[candidate]; !exists {
		t.taken[candidate] = struct{}{}
		return candidate
	}

	base := numberSuffix.ReplaceAllString(candidate, "")
	for n := 2; ; n++ {
		next := fmt.Sprintf("%s-%d", base, n)
		if _, exists := t.taken[next]; !exists {
			t.taken[next] = struct{}{}
			return next
		}
	}
}
