// Package cache stores filter results keyed by their inputs so that executions
// sharing sources and strategies do the work once.
package cache

import (
	"context"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Cache is the interface for a filter result cache.
type Cache interface {
	Get(ctx context.Context, key string) ([]string, bool)
	Set(ctx context.Context, key string, value []string)
}

// Key derives a stable key from a strategy description and the input texts.
func Key(strategy string, texts []string) string {
	hasher := xxhash.New()
	writeField(hasher, strategy)
	for _, text := range texts {
		writeField(hasher, text)
	}
	return "strfilter:" + strconv.FormatUint(hasher.Sum64(), 16)
}

// writeField length-prefixes each field so that field boundaries change the key.
func writeField(hasher *xxhash.Digest, field string) {
	hasher.WriteString(strconv.Itoa(len(field)))
	hasher.WriteString(":")
	hasher.WriteString(field)
}
