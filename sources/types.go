package sources

import (
	"context"
	"fmt"
	"slices"

	"strfilter/transformations"

	"k8s.io/client-go/kubernetes"
)

const (
	TypeDirectory = "Directory"
	TypeFile      = "File"
	TypeInline    = "Inline"
	TypeConfigMap = "ConfigMap"
	TypeSecret    = "Secret"
)

// Document is a single text to be filtered together with its source metadata
type Document struct {
	Name       string
	Text       string
	SourceType string
	Source     string
	Namespace  string
}

// Label describes where the document came from, e.g. "ConfigMap default/pages/intro.txt"
func (d Document) Label() string {
	if d.Namespace != "" {
		return fmt.Sprintf("%s %s/%s/%s", d.SourceType, d.Namespace, d.Source, d.Name)
	}
	return fmt.Sprintf("%s %s/%s", d.SourceType, d.Source, d.Name)
}

// SourceContexts defines context-based filtering for a source
type SourceContexts struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// InlineDocument is a document written directly in .strfilter.yaml
type InlineDocument struct {
	Name string `yaml:"name"`
	Text string `yaml:"text"`
}

// Source represents a source configuration from .strfilter.yaml
type Source struct {
	Name            string                   `yaml:"name"`
	Namespace       string                   `yaml:"namespace"`
	Type            string                   `yaml:"type"`
	Path            string                   `yaml:"path"`
	Pattern         string                   `yaml:"pattern"`
	Keys            []string                 `yaml:"keys"`
	Documents       []InlineDocument         `yaml:"documents"`
	Contexts        SourceContexts           `yaml:"contexts"`
	Transformations []transformations.Config `yaml:"transformations"`
}

// GetNamespace returns the namespace or "default" when none is set
func (s *Source) GetNamespace() string {
	if s.Namespace == "" {
		return "default"
	}
	return s.Namespace
}

// ShouldInclude returns true if the source should be included for the given contexts
func (s *Source) ShouldInclude(contexts []string) bool {
	if len(contexts) == 0 {
		return true
	}

	// With an include list, at least one selected context must be in it
	if len(s.Contexts.Include) > 0 && !slices.ContainsFunc(contexts, func(c string) bool {
		return slices.Contains(s.Contexts.Include, c)
	}) {
		return false
	}

	return !slices.ContainsFunc(contexts, func(c string) bool {
		return slices.Contains(s.Contexts.Exclude, c)
	})
}

// ShouldIncludeKey reports whether a ConfigMap or Secret key is selected by Keys
func (s *Source) ShouldIncludeKey(key string) bool {
	return len(s.Keys) == 0 || slices.Contains(s.Keys, key)
}

// Fetcher is the interface that all source types must implement
type Fetcher interface {
	Fetch(ctx context.Context, clientset kubernetes.Interface, source Source) ([]Document, error)
}

// Fetchers maps source types to their fetchers
func Fetchers() map[string]Fetcher {
	return map[string]Fetcher{
		TypeDirectory: &DirectoryFetcher{},
		TypeFile:      &FileFetcher{},
		TypeInline:    &InlineFetcher{},
		TypeConfigMap: &ConfigMapFetcher{},
		TypeSecret:    &SecretFetcher{},
	}
}

// NeedsKubernetes reports whether a source type reads from a cluster
func NeedsKubernetes(sourceType string) bool {
	return sourceType == TypeConfigMap || sourceType == TypeSecret
}

// AnyNeedsKubernetes reports whether any of the sources reads from a cluster
func AnyNeedsKubernetes(list []Source) bool {
	return slices.ContainsFunc(list, func(s Source) bool {
		return NeedsKubernetes(s.Type)
	})
}

// FetchAll fetches every source in order and applies its transformations.
// clientset may be nil when no source needs Kubernetes.
func FetchAll(ctx context.Context, clientset kubernetes.Interface, list []Source) ([]Document, error) {
	fetchers := Fetchers()

	var documents []Document
	for _, source := range list {
		if source.Type == "" {
			return nil, fmt.Errorf("type is required for source %q", source.Name)
		}

		fetcher, ok := fetchers[source.Type]
		if !ok {
			return nil, fmt.Errorf("unknown source type %q for source %q", source.Type, source.Name)
		}

		fetched, err := fetcher.Fetch(ctx, clientset, source)
		if err != nil {
			return nil, err
		}

		for i := range fetched {
			fetched[i].Text, err = transformations.ApplyTransformations(fetched[i].Text, source.Transformations)
			if err != nil {
				return nil, fmt.Errorf("failed to apply transformation for source %q: %w", source.Name, err)
			}
		}

		documents = append(documents, fetched...)
	}

	return documents, nil
}

// Texts returns the texts of the documents in order
func Texts(documents []Document) []string {
	texts := make([]string, len(documents))
	for i, d := range documents {
		texts[i] = d.Text
	}
	return texts
}

func requireClientset(clientset kubernetes.Interface, source Source) error {
	if clientset == nil {
		return fmt.Errorf("kubernetes client is required for %s source %q", source.Type, source.Name)
	}
	return nil
}
