package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics removes combining marks so "Café" and "Cafe" share a key.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// dedupeKey normalizes a business name for merging across strategies:
// lowercased, diacritics folded, whitespace collapsed. "Café de la  Gare"
// and "cafe de la gare" are the same business.
func dedupeKey(name string) string {
	folded, _, err := transform.String(foldDiacritics, name)
	if err != nil {
		folded = name
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// merge flattens per-strategy batches into one list with at most one entry
// per normalized name. First seen wins, in batch order.
func merge(batches [][]wireBusiness) []wireBusiness {
	seen := make(map[string]struct{})
	var out []wireBusiness
	for _, batch := range batches {
		for _, it := range batch {
			key := dedupeKey(it.Name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, it)
		}
	}
	return out
}
