package chunker

import "strings"

// separators in coarse-to-fine order: paragraph breaks, line breaks,
// sentence boundaries, then single spaces. Coarser splits keep chunks
// semantically coherent; finer ones are only used when a unit still
// exceeds the word budget.
var separators = []string{"\n\n", "\n", ". ", " "}

// splitRecursive splits text into pieces of at most maxWords words,
// with adjacent pieces overlapping by up to overlapWords words. The
// split is deterministic: the same text always yields the same pieces.
func splitRecursive(text string, maxWords, overlapWords int) []string {
	return splitWithSeps(text, separators, maxWords, overlapWords)
}

func splitWithSeps(text string, seps []string, maxWords, overlapWords int) []string {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	}

	if len(seps) == 0 {
		return hardSplit(words, maxWords, overlapWords)
	}

	sep := seps[0]
	parts := strings.Split(text, sep)
	if len(parts) <= 1 {
		return splitWithSeps(text, seps[1:], maxWords, overlapWords)
	}

	// A part that alone exceeds the budget is split further with the
	// finer separators before merging.
	var units []string
	for _, part := range parts {
		if len(strings.Fields(part)) > maxWords {
			units = append(units, splitWithSeps(part, seps[1:], maxWords, overlapWords)...)
		} else {
			units = append(units, part)
		}
	}

	var chunks []string
	var current []string
	currentWords := 0

	for _, unit := range units {
		unitWords := len(strings.Fields(unit))
		if currentWords+unitWords > maxWords && len(current) > 0 {
			if joined := strings.TrimSpace(strings.Join(current, sep)); joined != "" {
				chunks = append(chunks, joined)
			}
			// carry the tail of the finished chunk forward as overlap
			overlap, overlapCount := tailWithin(current, overlapWords)
			current = append(overlap, unit)
			currentWords = overlapCount + unitWords
		} else {
			current = append(current, unit)
			currentWords += unitWords
		}
	}

	if len(current) > 0 {
		if joined := strings.TrimSpace(strings.Join(current, sep)); joined != "" {
			chunks = append(chunks, joined)
		}
	}

	return chunks
}

func hardSplit(words []string, maxWords, overlapWords int) []string {
	stride := maxWords - overlapWords
	if stride < 1 {
		stride = maxWords
	}
	var chunks []string
	for i := 0; i < len(words); i += stride {
		end := i + maxWords
		if end > len(words) {
			end = len(words)
		}
		chunk := strings.TrimSpace(strings.Join(words[i:end], " "))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

// tailWithin returns the longest suffix of parts whose total word count
// stays within budget, along with that word count.
func tailWithin(parts []string, budget int) ([]string, int) {
	var tail []string
	count := 0
	for i := len(parts) - 1; i >= 0; i-- {
		pw := len(strings.Fields(parts[i]))
		if count+pw > budget {
			break
		}
		tail = append([]string{parts[i]}, tail...)
		count += pw
	}
	return tail, count
}
