package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Display names arrive from third-party identity providers and end up
// rendered on the leaderboard, so strip all markup rather than
// allowing a safe subset.
var namePolicy = bluemonday.StrictPolicy()

// SanitizeName strips HTML from user-supplied display text.
func SanitizeName(input string) string {
	return strings.TrimSpace(namePolicy.Sanitize(input))
}
