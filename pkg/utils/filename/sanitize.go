// Package filename derives safe export names from recording file names.
package filename

import "strings"

// DefaultMaxLen bounds clip names so suffixes like "-clip.webm" still fit
// comfortably under common filesystem limits.
const DefaultMaxLen = 80

// Fallback is used when sanitizing leaves nothing usable.
const Fallback = "clip"

// Sanitize reduces name to a slug safe to embed in an export filename.
// Letters, digits, '-', '_' and '.' pass through; any other run of characters
// collapses to a single '-'. Leading and trailing separators are stripped so
// the result never hides the file or ends in a dot. Empty results fall back
// to Fallback. maxLen <= 0 uses DefaultMaxLen; truncation is rune-safe.
func Sanitize(name string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}

	var b strings.Builder
	b.Grow(len(name))
	pendingDash := false
	for _, r := range name {
		if !safeRune(r) {
			pendingDash = b.Len() > 0
			continue
		}
		if pendingDash {
			b.WriteByte('-')
			pendingDash = false
		}
		if b.Len()+len(string(r)) > maxLen {
			break
		}
		b.WriteRune(r)
	}

	s := strings.Trim(b.String(), "-_.")
	if s == "" {
		return Fallback
	}
	return s
}

func safeRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '_', r == '.':
		return true
	}
	return false
}
