package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"refrain/internal/translit"
)

// foldTransform decomposes precomposed letters and strips the combining marks
// left behind, reducing ğ ç ş ö ü ñ â (and any stray accents) to plain ASCII.
var foldTransform = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Normalize produces the canonical comparison key for a display name:
// lowercase, transliterated, ASCII-folded, stripped of everything outside
// [a-z0-9] and single spaces. Total and idempotent; empty input yields "".
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	// Compose first so precomposed Cyrillic and Latin letters match the
	// substitution table and the fold pass as single code points.
	s := norm.NFC.String(raw)
	if translit.HasCyrillic(s) {
		s = translit.Transliterate(s)
	}
	s = strings.ToLower(s)
	if folded, _, err := transform.String(foldTransform, s); err == nil {
		s = folded
	}
	// Dotless i has no decomposition, so the fold pass leaves it alone.
	s = strings.ReplaceAll(s, "ı", "i")

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSpace = true
		}
	}
	return b.String()
}
