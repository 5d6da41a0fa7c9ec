// utils/slug.go
package utils

import (
	"regexp"
	"strings"
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9_-]`)
)

// Slugify derives a stable lowercase identifier from a display name:
// whitespace runs collapse to a single hyphen and everything outside
// [a-z0-9_-] is stripped. No uniqueness or collision handling; a name with
// no ASCII-mappable characters (e.g. pure Arabic) slugifies to "".
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = whitespaceRuns.ReplaceAllString(s, "-")
	return nonSlugChars.ReplaceAllString(s, "")
}
