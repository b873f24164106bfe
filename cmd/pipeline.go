package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"strfilter/cache"
	"strfilter/config"
	"strfilter/filter"
	"strfilter/gitutil"
	"strfilter/sources"
	"strfilter/transformations"
)

// pipeline filters fetched documents and applies the output transformations
type pipeline struct {
	cache           cache.Cache
	threshold       int
	strategies      []filter.Config
	transformations []transformations.Config
}

func (p *pipeline) run(ctx context.Context, documents []sources.Document) ([]sources.Document, error) {
	texts := sources.Texts(documents)

	var filtered []string
	key := cache.Key(describeStrategies(p.strategies, p.threshold), texts)
	if cached, ok := p.cache.Get(ctx, key); ok && len(cached) == len(texts) {
		slog.Debug("using cached filter result", "documents", len(texts))
		filtered = cached
	} else {
		var err error
		filtered, err = filter.ApplyStrategies(ctx, texts, p.strategies, p.threshold)
		if err != nil {
			return nil, err
		}
		p.cache.Set(ctx, key, filtered)
	}

	out := make([]sources.Document, len(documents))
	for i, document := range documents {
		text, err := transformations.ApplyTransformations(filtered[i], p.transformations)
		if err != nil {
			return nil, fmt.Errorf("failed to apply output transformation: %w", err)
		}
		document.Text = text
		out[i] = document

		slog.Debug("filtered document", "document", document.Label(), "before", len(texts[i]), "after", len(text))
	}
	return out, nil
}

func describeStrategies(configs []filter.Config, threshold int) string {
	parts := make([]string, len(configs))
	for i, c := range configs {
		parts[i] = c.Describe(threshold)
	}
	return strings.Join(parts, ",")
}

// openCache uses Redis when an address is configured and memory otherwise
func openCache(cfg config.CacheConfig) (cache.Cache, func(), error) {
	if cfg.RedisAddr == "" {
		return cache.NewMemoryCache(cfg.TTL, 2*cfg.TTL), func() {}, nil
	}

	redisCache := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.TTL)
	if err := redisCache.Ping(context.Background()); err != nil {
		redisCache.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	return redisCache, func() { redisCache.Close() }, nil
}

// writeDocuments writes one file per document into directory, or a single
// combined file when name is set. It returns the paths written.
func writeDocuments(documents []sources.Document, directory, name string) ([]string, error) {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	if name != "" {
		path := filepath.Join(directory, name)
		if err := os.WriteFile(path, []byte(combine(documents)), 0644); err != nil {
			return nil, fmt.Errorf("failed to write output file: %w", err)
		}
		return []string{path}, nil
	}

	written := make(map[string]string)
	var paths []string
	for _, document := range documents {
		path := filepath.Join(directory, filepath.Base(document.Name))
		if previous, ok := written[path]; ok {
			return nil, fmt.Errorf("documents %q and %q would both be written to %s, use an output name to combine them", previous, document.Label(), path)
		}
		written[path] = document.Label()

		if err := os.WriteFile(path, []byte(document.Text), 0644); err != nil {
			return nil, fmt.Errorf("failed to write output file: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// combine renders documents under "# <label>" headers separated by blank lines
func combine(documents []sources.Document) string {
	var sb strings.Builder
	for i, document := range documents {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "# %s\n", document.Label())
		sb.WriteString(document.Text)
		if !strings.HasSuffix(document.Text, "\n") {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func ensureGitignored(out io.Writer, cfg *config.Config, paths []string) error {
	if skipGitignore || (cfg != nil && !cfg.GitignoreEnabled()) {
		return nil
	}
	for _, path := range paths {
		if err := gitutil.EnsureGitignored(out, path); err != nil {
			return err
		}
	}
	return nil
}

func selectSources(list []sources.Source, contexts []string) []sources.Source {
	var selected []sources.Source
	for _, source := range list {
		if source.ShouldInclude(contexts) {
			selected = append(selected, source)
		}
	}
	return selected
}
