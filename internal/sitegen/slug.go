package sitegen

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// Slug derives an npm package name from a site name: the name is lower-cased
// and every rune outside [a-z0-9] becomes "-". Separators are neither collapsed
// nor trimmed, so "Happy Paws Rescue!" becomes "happy-paws-rescue-".
func Slug(name string) string {
	lowered := lower.String(name)
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('-')
	}
	return b.String()
}
