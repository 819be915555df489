package registry

import (
	"strings"
	"unicode"
)

// Slugify turns human text into a URL-path-safe slug: lowercase,
// whitespace runs become a single hyphen, anything outside [a-z0-9_.-]
// is dropped, hyphen runs collapse and leading/trailing hyphens are
// trimmed. Non-ASCII letters are dropped, not transliterated.
//
// The function is idempotent: Slugify(Slugify(s)) == Slugify(s).
func Slugify(text string) string {
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))

	lastHyphen := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r), r == '-':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '.':
			b.WriteRune(r)
			lastHyphen = false
		}
	}

	return strings.Trim(b.String(), "-")
}
