package searcher

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"lexy/internal/domain"
)

// searchFuzzy scores every chunk with a token-set similarity on a 0-100
// scale and keeps those at or above the threshold. The token-set
// construction rewards partial containment and reordered tokens
// ("Smith, John" vs "John Smith") over whole-string edit distance.
func (e *Engine) searchFuzzy(query string, chunks []domain.Chunk, topK, threshold int) []domain.SearchResult {
	queryWords := fuzzyWords(query)
	if len(queryWords) == 0 {
		return nil
	}

	type hit struct {
		ordinal int
		raw     float64
	}
	var hits []hit

	for i, chunk := range chunks {
		raw := tokenSetRatio(queryWords, fuzzyWords(chunk.Text))
		if raw < float64(threshold) {
			continue
		}
		hits = append(hits, hit{ordinal: i, raw: raw})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].raw > hits[j].raw
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, h := range hits {
		results = append(results, resultFor(chunks[h.ordinal], roundScore(h.raw/100), domain.MatchFuzzy))
	}
	return results
}

// tokenSetRatio compares two word lists by building three strings per
// side: the sorted intersection, and the intersection joined with each
// side's sorted remainder. The best pairwise similarity wins, so a query
// fully contained in a chunk scores high regardless of word order.
func tokenSetRatio(aWords, bWords []string) float64 {
	aSet := wordSet(aWords)
	bSet := wordSet(bWords)

	var common, aOnly, bOnly []string
	for w := range aSet {
		if _, ok := bSet[w]; ok {
			common = append(common, w)
		} else {
			aOnly = append(aOnly, w)
		}
	}
	for w := range bSet {
		if _, ok := aSet[w]; !ok {
			bOnly = append(bOnly, w)
		}
	}
	sort.Strings(common)
	sort.Strings(aOnly)
	sort.Strings(bOnly)

	intersection := strings.Join(common, " ")
	combinedA := joinNonEmpty(intersection, strings.Join(aOnly, " "))
	combinedB := joinNonEmpty(intersection, strings.Join(bOnly, " "))

	originalA := strings.Join(aWords, " ")
	originalB := strings.Join(bWords, " ")

	best := similarity(combinedA, combinedB)
	if s := similarity(originalA, originalB); s > best {
		best = s
	}
	if s := similarity(combinedA, originalB); s > best {
		best = s
	}
	if s := similarity(combinedB, originalA); s > best {
		best = s
	}
	return best
}

// similarity is a normalized edit-distance ratio on a 0-100 scale. When
// one string is much shorter, the best sliding-window alignment against
// the longer string is taken as well, so a short query contained in a
// long chunk is not swamped by the surrounding text.
func similarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	max := len(rb)
	dist := levenshtein.ComputeDistance(string(ra), string(rb))
	best := 100 * (1 - float64(dist)/float64(max))

	if len(ra) < len(rb) {
		if s := bestWindow(ra, rb); s > best {
			best = s
		}
	}
	return best
}

// bestWindow compares the shorter string against every same-length
// window of the longer one and returns the best normalized ratio.
func bestWindow(short, long []rune) float64 {
	m := len(short)
	best := 0.0
	for i := 0; i+m <= len(long); i++ {
		dist := levenshtein.ComputeDistance(string(short), string(long[i:i+m]))
		s := 100 * (1 - float64(dist)/float64(m))
		if s > best {
			best = s
		}
	}
	return best
}

// fuzzyWords lowercases and splits on non-alphanumeric runes. Stopwords
// are kept: fuzzy matching compares surface forms, not index terms.
func fuzzyWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}
