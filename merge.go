package lexipage

import (
	"sort"
	"strings"
)

// MergeRuns merges selected token positions into the minimal set of maximal
// contiguous runs, in document order. Positions are sorted and deduplicated
// first; negative positions are dropped. Merging is idempotent: the positions
// of an already-merged run merge back into the same single run.
func MergeRuns(positions []int) [][]int {
	if len(positions) == 0 {
		return nil
	}

	sorted := make([]int, 0, len(positions))
	for _, p := range positions {
		if p >= 0 {
			sorted = append(sorted, p)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.Ints(sorted)

	var runs [][]int
	run := []int{sorted[0]}
	for _, p := range sorted[1:] {
		prev := run[len(run)-1]
		switch {
		case p == prev:
			// Duplicate position
		case p == prev+1:
			run = append(run, p)
		default:
			runs = append(runs, run)
			run = []int{p}
		}
	}
	runs = append(runs, run)

	return runs
}

// MergePhrases merges selected token positions and renders each run as a
// phrase by joining its tokens with single spaces. Positions outside the
// token slice are ignored; runs left empty by that are dropped. Empty input
// yields an empty result.
func MergePhrases(positions []int, tokens []string) []string {
	var phrases []string
	for _, run := range MergeRuns(positions) {
		words := make([]string, 0, len(run))
		for _, p := range run {
			if p < len(tokens) {
				words = append(words, tokens[p])
			}
		}
		if len(words) > 0 {
			phrases = append(phrases, strings.Join(words, " "))
		}
	}
	return phrases
}
