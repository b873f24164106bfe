package filter

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"
)

func TestRemoveLongestShared(t *testing.T) {
	tests := []struct {
		name      string
		input     []string
		threshold int
		want      []string
	}{
		{
			name:      "single round",
			input:     []string{"one-common-tail-1", "two-common-tail-2"},
			threshold: 3,
			want:      []string{"one1", "two2"},
		},
		{
			name:      "longest first then shorter",
			input:     []string{"aaaaaaaaZbbbb", "aaaaaaaaY", "Xbbbb"},
			threshold: 2,
			want:      []string{"Z", "Y", "X"},
		},
		{
			name:      "shorter run kept by threshold",
			input:     []string{"aaaaaaaaZbbbb", "aaaaaaaaY", "Xbbbb"},
			threshold: 4,
			want:      []string{"Zbbbb", "Y", "Xbbbb"},
		},
		{
			name:      "nothing shared",
			input:     []string{"alpha", "omega"},
			threshold: 1,
			want:      []string{"alpha", "omega"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			original := copyStrings(tc.input)
			got, err := RemoveLongestShared(tc.input, tc.threshold)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
			if !reflect.DeepEqual(tc.input, original) {
				t.Fatalf("input was modified: %q", tc.input)
			}
		})
	}
}

func TestRemoveLongestSharedSuffixFixture(t *testing.T) {
	strings, input := suffixFixture()

	got, err := RemoveLongestShared(input, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, strings) {
		t.Fatalf("expected %q, got %q", strings, got)
	}

	got, err = RemoveLongestShared(input, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, input) {
		t.Fatalf("expected input unchanged, got %q", got)
	}
}

func TestRemoveLongestSharedRejectsNegativeThreshold(t *testing.T) {
	if _, err := RemoveLongestShared([]string{"a"}, -2); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSecondLongest(t *testing.T) {
	if got := secondLongest([]string{"abc", "abcdefg", "ab", "äöüß"}); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
	if got := secondLongest([]string{"only"}); got != 0 {
		t.Fatalf("expected 0 for a single string, got %d", got)
	}
}

func TestFirstSharedWindowIsEarliest(t *testing.T) {
	w, ok := firstSharedWindow(splitAll([]string{"xabcyzdef", "defabc"}), 3)
	if !ok {
		t.Fatalf("expected a shared window")
	}
	if w != "abc" {
		t.Fatalf("expected earliest shared window %q, got %q", "abc", w)
	}
}

// randomLetters returns n pseudo random lowercase letters
func randomLetters(rng *rand.Rand, n int) string {
	var sb strings.Builder
	for range n {
		sb.WriteByte(byte('a' + rng.IntN(26)))
	}
	return sb.String()
}

func longTailInput(n int) ([]string, []string) {
	rng := rand.New(rand.NewPCG(1, 2))
	first := randomLetters(rng, n) + "1"
	second := randomLetters(rng, n) + "2"
	tail := randomLetters(rng, n)
	return []string{first, second}, []string{first + tail, second + tail}
}

func TestRemoveLongestSharedLongDocuments(t *testing.T) {
	want, input := longTailInput(20000)

	got, err := RemoveLongestShared(input, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected the shared tail to be removed, got lengths %d and %d", len(got[0]), len(got[1]))
	}
}

func TestRemoveLongestSharedKeepsUnsharedThueMorseText(t *testing.T) {
	input := []string{
		thueMorse(1024, 'a', 'b') + "X",
		thueMorse(1024, 'b', 'a') + "Y",
	}

	got, err := RemoveLongestShared(input, 1023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, input) {
		t.Fatalf("expected input unchanged, got lengths %d and %d", len(got[0]), len(got[1]))
	}
}

func BenchmarkRemoveLongestShared(b *testing.B) {
	_, input := longTailInput(40000)
	for b.Loop() {
		if _, err := RemoveLongestShared(input, 50); err != nil {
			b.Fatal(err)
		}
	}
}
