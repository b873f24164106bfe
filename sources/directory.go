package sources

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/kubernetes"
)

const defaultPattern = "*.txt"

// DirectoryFetcher reads every matching file of a directory, ordered by file name
type DirectoryFetcher struct{}

func (f *DirectoryFetcher) Fetch(ctx context.Context, clientset kubernetes.Interface, source Source) ([]Document, error) {
	if source.Path == "" {
		return nil, fmt.Errorf("path is required for Directory source %q", source.Name)
	}

	pattern := source.Pattern
	if pattern == "" {
		pattern = defaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q for Directory source %q: %w", pattern, source.Name, err)
	}

	entries, err := os.ReadDir(source.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", source.Path, err)
	}

	var documents []Document
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if matched, _ := filepath.Match(pattern, entry.Name()); !matched {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(source.Path, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", path, err)
		}

		documents = append(documents, Document{
			Name:       entry.Name(),
			Text:       string(content),
			SourceType: TypeDirectory,
			Source:     sourceName(source, source.Path),
		})
	}

	return documents, nil
}

func sourceName(source Source, fallback string) string {
	if source.Name != "" {
		return source.Name
	}
	return fallback
}
