package sources

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/kubernetes"
)

// FileFetcher reads a single file as one document
type FileFetcher struct{}

func (f *FileFetcher) Fetch(ctx context.Context, clientset kubernetes.Interface, source Source) ([]Document, error) {
	if source.Path == "" {
		return nil, fmt.Errorf("path is required for File source %q", source.Name)
	}

	content, err := os.ReadFile(source.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", source.Path, err)
	}

	return []Document{{
		Name:       filepath.Base(source.Path),
		Text:       string(content),
		SourceType: TypeFile,
		Source:     sourceName(source, filepath.Dir(source.Path)),
	}}, nil
}
