// Package textfold builds accent- and case-insensitive search keys for Turkish text,
// so "istanbul", "ISTANBUL" and "İstanbul" all match the same rows.
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Turkish)

// Fold lower-cases s with Turkish rules, strips combining marks and maps the
// dotless ı to i. Runs of whitespace collapse to one space.
func Fold(s string) string {
	s = lower.String(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ = transform.String(t, s)
	s = strings.ReplaceAll(s, "ı", "i")
	return strings.Join(strings.Fields(s), " ")
}

// Join folds and concatenates parts into one search document.
func Join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if f := Fold(p); f != "" {
			out = append(out, f)
		}
	}
	return strings.Join(out, " ")
}

// Pattern turns a user query into a LIKE pattern over folded text.
// An empty query yields an empty pattern.
func Pattern(q string) string {
	f := Fold(q)
	if f == "" {
		return ""
	}
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(f) + "%"
}
