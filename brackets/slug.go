package brackets

import "strings"

// Slug canonicalizes a category label: whitespace stripped, upper-cased,
// cut to three runes. Everything that normalizes to nothing becomes "X",
// so a slug is never empty. Idempotent.
func Slug(s string) string {
	out := strings.ToUpper(strings.Join(strings.Fields(s), ""))
	if r := []rune(out); len(r) > 3 {
		out = string(r[:3])
	}
	if out == "" {
		return "X"
	}
	return out
}
