package filter

import "context"

// RemovePairwiseOverlaps removes from each string every run longer than threshold runes
// that also appears in another string. Pairs are visited in order against the current
// values, so one copy of each shared run survives in the last string holding it.
func RemovePairwiseOverlaps(input []string, threshold int) ([]string, error) {
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}

	window := windowSize(threshold)
	out := copyStrings(input)
	for i := range out {
		for j := range out {
			if i == j {
				continue
			}
			out[i] = removeRunsSharedWith(out[i], out[j], window)
		}
	}
	return out, nil
}

func removeRunsSharedWith(text, other string, window int) string {
	d := indexDocument(text, window)
	if !d.reducible() {
		return text
	}
	return d.removeWhere(indexDocument(other, window).distinct)
}

// PairwiseOverlap strips overlaps pair by pair, keeping one copy
type PairwiseOverlap struct {
	Threshold int
}

func (p *PairwiseOverlap) Name() string {
	return TypePairwiseOverlap
}

func (p *PairwiseOverlap) Apply(ctx context.Context, input []string) ([]string, error) {
	return RemovePairwiseOverlaps(input, p.Threshold)
}
