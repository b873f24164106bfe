package transformations

import (
	"strings"
	"testing"
)

func TestTransformations(t *testing.T) {
	tests := []struct {
		cfg   Config
		input string
		want  string
	}{
		{Config{Type: "trim_space"}, "  \n body \t\n", "body"},
		{Config{Type: "collapse_blank_lines"}, "a\n\n\n  \nb\n\nc", "a\n\nb\n\nc"},
		{Config{Type: "prefix", Value: "# "}, "title", "# title"},
		{Config{Type: "suffix", Value: "\n"}, "line", "line\n"},
		{Config{Type: "base64_encode"}, "hello", "aGVsbG8="},
		{Config{Type: "base64_decode"}, "aGVsbG8=", "hello"},
		{Config{Type: "base64_decode"}, "not base64!", "not base64!"},
	}

	for _, tc := range tests {
		tr, err := BuildTransformation(tc.cfg)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.cfg.Type, err)
		}
		if got := tr.Transform(tc.input); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.cfg.Type, tc.want, got)
		}
	}
}

func TestApplyTransformationsInOrder(t *testing.T) {
	configs := []Config{
		{Type: "trim_space"},
		{Type: "prefix", Value: "> "},
	}
	got, err := ApplyTransformations("  quoted  ", configs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "> quoted" {
		t.Fatalf("expected %q, got %q", "> quoted", got)
	}
}

func TestApplyTransformationsUnknownType(t *testing.T) {
	got, err := ApplyTransformations("text", []Config{{Type: "upper"}})
	if err == nil || !strings.Contains(err.Error(), "unknown transformation type: upper") {
		t.Fatalf("expected unknown transformation error, got %v", err)
	}
	if got != "text" {
		t.Fatalf("expected input returned on error, got %q", got)
	}
}
