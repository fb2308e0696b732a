package catalog

import "strings"

// Normalize canonicalizes a runtime or provider name into a comparison key:
// lower-cased with every character outside [a-z0-9] removed. The rule-table
// join uses these keys so that formatting drift between the voice table and
// the rule tables ("Azure Speech API" vs "azure-speech-api") cannot break
// the match. The empty string maps to the empty key.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
