package filter

import "context"

// FilterListOfStrings removes from every string the text it shares with at least one
// other string, when the shared run is longer than threshold runes.
// The result has the same length and order as strings; strings itself is left untouched.
func FilterListOfStrings(strings []string, threshold int) ([]string, error) {
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}

	window := windowSize(threshold)
	docs := make([]*document, len(strings))
	for i, s := range strings {
		docs[i] = indexDocument(s, window)
	}

	shared := sharedHashes(docs)
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.removeWhere(shared)
	}
	return out, nil
}

// sharedHashes collects the window hashes present in two or more documents.
func sharedHashes(docs []*document) map[uint64]struct{} {
	seen := make(map[uint64]struct{})
	shared := make(map[uint64]struct{})
	for _, d := range docs {
		for h := range d.distinct {
			if _, ok := seen[h]; ok {
				shared[h] = struct{}{}
			} else {
				seen[h] = struct{}{}
			}
		}
	}
	return shared
}

// SharedSubstrings strips text shared between documents in a single pass
type SharedSubstrings struct {
	Threshold int
}

func (s *SharedSubstrings) Name() string {
	return TypeSharedSubstrings
}

func (s *SharedSubstrings) Apply(ctx context.Context, input []string) ([]string, error) {
	return FilterListOfStrings(input, s.Threshold)
}
