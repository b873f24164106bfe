package filter

import (
	"context"
	"fmt"
	"strings"
)

const (
	TypeSharedSubstrings = "shared_substrings"
	TypeSharedPrefix     = "shared_prefix"
	TypeLongestShared    = "longest_shared"
	TypePairwiseOverlap  = "pairwise_overlap"
	TypeParallel         = "parallel"
)

// Types lists every strategy name known to BuildStrategy
var Types = []string{
	TypeSharedSubstrings,
	TypeSharedPrefix,
	TypeLongestShared,
	TypePairwiseOverlap,
	TypeParallel,
}

// Config represents a strategy configuration from YAML
type Config struct {
	Type      string `yaml:"type"`
	Threshold *int   `yaml:"threshold,omitempty"`
	Workers   int    `yaml:"workers,omitempty"`
}

// ThresholdOr returns the configured threshold or fallback when none is set
func (c Config) ThresholdOr(fallback int) int {
	if c.Threshold != nil {
		return *c.Threshold
	}
	return fallback
}

// Describe renders the parts of the configuration that affect the output
func (c Config) Describe(fallback int) string {
	typ := c.Type
	if typ == "" {
		typ = TypeSharedSubstrings
	}
	// Parallel output is identical to the single pass version.
	if typ == TypeParallel {
		typ = TypeSharedSubstrings
	}
	return fmt.Sprintf("%s:%d", typ, c.ThresholdOr(fallback))
}

// IsKnownType reports whether name is a registered strategy (empty means the default)
func IsKnownType(name string) bool {
	if name == "" {
		return true
	}
	for _, t := range Types {
		if t == name {
			return true
		}
	}
	return false
}

// BuildStrategy creates a Strategy from a config. fallback is used when the config
// carries no threshold of its own.
func BuildStrategy(cfg Config, fallback int) (Strategy, error) {
	threshold := cfg.ThresholdOr(fallback)
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case "", TypeSharedSubstrings:
		return &SharedSubstrings{Threshold: threshold}, nil
	case TypeSharedPrefix:
		return &SharedPrefix{Threshold: threshold}, nil
	case TypeLongestShared:
		return &LongestShared{Threshold: threshold}, nil
	case TypePairwiseOverlap:
		return &PairwiseOverlap{Threshold: threshold}, nil
	case TypeParallel:
		return &Parallel{Threshold: threshold, Workers: cfg.Workers}, nil
	default:
		return nil, fmt.Errorf("unknown strategy type: %s (must be one of %s)", cfg.Type, strings.Join(Types, ", "))
	}
}

// ApplyStrategies runs the configured strategies in order over texts
func ApplyStrategies(ctx context.Context, texts []string, configs []Config, fallback int) ([]string, error) {
	out := copyStrings(texts)
	for _, cfg := range configs {
		s, err := BuildStrategy(cfg, fallback)
		if err != nil {
			return nil, err
		}

		out, err = s.Apply(ctx, out)
		if err != nil {
			return nil, fmt.Errorf("failed to apply strategy %s: %w", s.Name(), err)
		}
	}
	return out, nil
}
