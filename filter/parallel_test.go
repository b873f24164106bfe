package filter

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func corpus() []string {
	footer := " -- shared footer with a long disclaimer that every page repeats"
	var docs []string
	for i := range 12 {
		docs = append(docs, fmt.Sprintf("page %d has its own body number %d%s", i, i*i, footer))
	}
	docs = append(docs, "a document without the footer")
	return docs
}

func TestFilterParallelMatchesSinglePass(t *testing.T) {
	input := corpus()
	want, err := FilterListOfStrings(input, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, workers := range []int{0, 1, 3, 64} {
		got, err := FilterParallel(context.Background(), input, 10, workers)
		if err != nil {
			t.Fatalf("workers %d: unexpected error: %v", workers, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("workers %d: expected %q, got %q", workers, want, got)
		}
	}
}

func TestFilterParallelEmpty(t *testing.T) {
	got, err := FilterParallel(context.Background(), nil, 2, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestFilterParallelCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FilterParallel(ctx, corpus(), 10, 2)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFilterParallelRejectsNegativeThreshold(t *testing.T) {
	_, err := FilterParallel(context.Background(), corpus(), -3, 2)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
