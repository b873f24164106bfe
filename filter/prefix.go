package filter

import (
	"context"
	"unicode/utf8"
)

// RemoveSharedPrefix drops the leading text a string shares with any other string when
// that prefix is longer than threshold runes. Strings are visited in order and compared
// against the already trimmed values, so the last holder of a prefix keeps it:
//
//	["aaaaaaaacccc", "aaaaaaaabbbb", "aaaaaaaaddddd"] -> ["cccc", "bbbb", "aaaaaaaaddddd"]
//
// At least one rune of every string is kept.
func RemoveSharedPrefix(strings []string, threshold int) ([]string, error) {
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}

	out := copyStrings(strings)
	for i, current := range out {
		longestRunes, longestBytes := 0, 0
		for j, other := range out {
			if i == j {
				continue
			}
			runes, bytes := commonPrefix(current, other)
			if runes > longestRunes {
				longestRunes, longestBytes = runes, bytes
			}
		}

		if longestRunes <= threshold {
			continue
		}
		if longestBytes == len(current) {
			_, size := utf8.DecodeLastRuneInString(current)
			longestBytes -= size
		}
		out[i] = current[longestBytes:]
	}
	return out, nil
}

// commonPrefix returns the length of the common prefix of a and b in runes and bytes.
func commonPrefix(a, b string) (runes, bytes int) {
	for bytes < len(a) && bytes < len(b) {
		_, sizeA := utf8.DecodeRuneInString(a[bytes:])
		_, sizeB := utf8.DecodeRuneInString(b[bytes:])
		if sizeA != sizeB || a[bytes:bytes+sizeA] != b[bytes:bytes+sizeB] {
			break
		}
		bytes += sizeA
		runes++
	}
	return runes, bytes
}

// SharedPrefix strips prefixes shared between documents, keeping one copy
type SharedPrefix struct {
	Threshold int
}

func (s *SharedPrefix) Name() string {
	return TypeSharedPrefix
}

func (s *SharedPrefix) Apply(ctx context.Context, input []string) ([]string, error) {
	return RemoveSharedPrefix(input, s.Threshold)
}
