package filter

import (
	"context"
	"strings"
	"unicode/utf8"
)

// RemoveLongestShared repeatedly finds the longest substring (longer than threshold
// runes) present in at least two strings and removes every occurrence of it, until no
// such substring is left.
func RemoveLongestShared(input []string, threshold int) ([]string, error) {
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}

	out := copyStrings(input)
	low := windowSize(threshold)
	high := secondLongest(out)

	for {
		length, shared, ok := longestSharedWindow(splitAll(out), low, high)
		if !ok {
			return out, nil
		}
		for i := range out {
			out[i] = strings.ReplaceAll(out[i], shared, "")
		}
		// Removal only shortens strings, later rounds cannot find anything longer.
		high = length
	}
}

func splitAll(texts []string) []runeText {
	split := make([]runeText, len(texts))
	for i, text := range texts {
		split[i] = splitRunes(text)
	}
	return split
}

// longestSharedWindow binary searches the largest length in [low, high] for which a
// window is shared. A shared window of length n implies one of every shorter length.
func longestSharedWindow(texts []runeText, low, high int) (int, string, bool) {
	var best string
	bestLength := 0
	for low <= high {
		mid := low + (high-low)/2
		if w, ok := firstSharedWindow(texts, mid); ok {
			best, bestLength = w, mid
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	return bestLength, best, bestLength > 0
}

// firstSharedWindow returns the earliest window of length runes (first string, first
// position) that also occurs in another string. Rolling hashes pick the candidates and
// the text itself confirms them.
func firstSharedWindow(texts []runeText, length int) (string, bool) {
	hashes := make([][]uint64, len(texts))
	counts := make(map[uint64]int)
	for i, t := range texts {
		hashes[i] = rollingHashes(t.values, length)
		seen := make(map[uint64]struct{}, len(hashes[i]))
		for _, h := range hashes[i] {
			if _, ok := seen[h]; ok {
				continue
			}
			seen[h] = struct{}{}
			counts[h]++
		}
	}

	for i, hs := range hashes {
		for pos, h := range hs {
			if counts[h] < 2 {
				continue
			}
			window := texts[i].window(pos, length)
			if occursElsewhere(texts, i, window) {
				return window, true
			}
		}
	}
	return "", false
}

func occursElsewhere(texts []runeText, self int, window string) bool {
	for j, other := range texts {
		if j != self && strings.Contains(other.text, window) {
			return true
		}
	}
	return false
}

// secondLongest returns the rune length of the second longest string, the upper bound
// for any substring shared by two strings.
func secondLongest(texts []string) int {
	first, second := 0, 0
	for _, text := range texts {
		n := utf8.RuneCountInString(text)
		if n > first {
			first, second = n, first
		} else if n > second {
			second = n
		}
	}
	return second
}

// LongestShared removes the longest shared substrings first
type LongestShared struct {
	Threshold int
}

func (l *LongestShared) Name() string {
	return TypeLongestShared
}

func (l *LongestShared) Apply(ctx context.Context, input []string) ([]string, error) {
	return RemoveLongestShared(input, l.Threshold)
}
