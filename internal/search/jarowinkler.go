// Package search implements the keyword search over tasks: exact substring
// containment first, then Jaro-Winkler similarity per word to tolerate
// misspellings.
package search

const (
	winklerPrefixWeight = 0.1
	winklerMaxPrefix    = 4
)

// Similarity returns the Jaro-Winkler similarity of candidate and term in
// [0, 1]. Inputs are compared rune by rune as given; callers normalise case.
// For each rune of term a match is looked for in candidate within the
// usual window of max(len)/2 - 1.
func Similarity(candidate, term string) float64 {
	if candidate == term {
		return 1.0
	}

	a, b := []rune(candidate), []rune(term)
	matchDistance := max(0, max(len(a), len(b))/2-1)

	aUsed := make([]bool, len(a))
	bUsed := make([]bool, len(b))
	matches := 0
	for i := range b {
		start := max(0, i-matchDistance)
		end := min(i+matchDistance+1, len(a))
		for j := start; j < end; j++ {
			if aUsed[j] || a[j] != b[i] {
				continue
			}
			aUsed[j] = true
			bUsed[i] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0.0
	}

	// Walk matched runes of both strings in order; every position where
	// they disagree is half a transposition.
	outOfOrder := 0
	k := 0
	for i := range b {
		if !bUsed[i] {
			continue
		}
		for k < len(a) && !aUsed[k] {
			k++
		}
		if k < len(a) && b[i] != a[k] {
			outOfOrder++
		}
		k++
	}
	transpositions := float64(outOfOrder) / 2.0

	m := float64(matches)
	jaro := (m/float64(len(b)) + m/float64(len(a)) + (m-transpositions)/m) / 3.0

	prefix := commonPrefix(a, b, winklerMaxPrefix)
	return jaro + winklerPrefixWeight*float64(prefix)*(1-jaro)
}

func commonPrefix(a, b []rune, limit int) int {
	limit = min(limit, len(a), len(b))
	n := 0
	for n < limit && a[n] == b[n] {
		n++
	}
	return n
}
