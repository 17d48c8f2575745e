package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SearchKey normaliza un nombre para búsqueda/deduplicación en catálogos:
// minúsculas, sin tildes ni diacríticos, espacios colapsados.
// "Tomate Chonto Río Grande " -> "tomate chonto rio grande".
func SearchKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.ToLower(strings.TrimSpace(out))
	return strings.Join(strings.Fields(out), " ")
}
