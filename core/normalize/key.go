package normalize

import "strings"

// CleanKey canonicalizes a key cell for case-insensitive matching.
// It returns false when the trimmed value is empty.
func CleanKey(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	return strings.ToUpper(s), true
}
