package sources

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"strfilter/transformations"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func names(documents []Document) []string {
	var out []string
	for _, d := range documents {
		out = append(out, d.Name)
	}
	return out
}

func TestShouldInclude(t *testing.T) {
	source := Source{Contexts: SourceContexts{Include: []string{"wiki", "docs"}, Exclude: []string{"draft"}}}

	tests := []struct {
		contexts []string
		want     bool
	}{
		{nil, true},
		{[]string{"wiki"}, true},
		{[]string{"other", "docs"}, true},
		{[]string{"other"}, false},
		{[]string{"wiki", "draft"}, false},
	}
	for _, tc := range tests {
		if got := source.ShouldInclude(tc.contexts); got != tc.want {
			t.Fatalf("contexts %v: expected %v, got %v", tc.contexts, tc.want, got)
		}
	}

	excludeOnly := Source{Contexts: SourceContexts{Exclude: []string{"draft"}}}
	if !excludeOnly.ShouldInclude([]string{"wiki"}) || excludeOnly.ShouldInclude([]string{"draft"}) {
		t.Fatalf("exclude-only source filtered incorrectly")
	}
}

func TestGetNamespace(t *testing.T) {
	if got := (&Source{}).GetNamespace(); got != "default" {
		t.Fatalf("expected default namespace, got %q", got)
	}
	if got := (&Source{Namespace: "docs"}).GetNamespace(); got != "docs" {
		t.Fatalf("expected docs namespace, got %q", got)
	}
}

func TestDirectoryFetcher(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "second")
	writeFile(t, dir, "a.txt", "first")
	writeFile(t, dir, "notes.md", "markdown")
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}

	documents, err := (&DirectoryFetcher{}).Fetch(context.Background(), nil, Source{Name: "wiki", Path: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(documents); !reflect.DeepEqual(got, []string{"a.txt", "b.txt"}) {
		t.Fatalf("expected sorted txt files, got %v", got)
	}
	if documents[0].Text != "first" || documents[0].Source != "wiki" || documents[0].SourceType != TypeDirectory {
		t.Fatalf("unexpected document %+v", documents[0])
	}

	documents, err = (&DirectoryFetcher{}).Fetch(context.Background(), nil, Source{Path: dir, Pattern: "*.md"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(documents); !reflect.DeepEqual(got, []string{"notes.md"}) {
		t.Fatalf("expected markdown file, got %v", got)
	}
}

func TestDirectoryFetcherErrors(t *testing.T) {
	fetcher := &DirectoryFetcher{}
	if _, err := fetcher.Fetch(context.Background(), nil, Source{Name: "x"}); err == nil || !strings.Contains(err.Error(), "path is required") {
		t.Fatalf("expected missing path error, got %v", err)
	}
	if _, err := fetcher.Fetch(context.Background(), nil, Source{Path: t.TempDir(), Pattern: "["}); err == nil || !strings.Contains(err.Error(), "invalid pattern") {
		t.Fatalf("expected invalid pattern error, got %v", err)
	}
	if _, err := fetcher.Fetch(context.Background(), nil, Source{Path: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestFileFetcher(t *testing.T) {
	path := writeFile(t, t.TempDir(), "page.txt", "contents")

	documents, err := (&FileFetcher{}).Fetch(context.Background(), nil, Source{Name: "single", Path: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(documents) != 1 || documents[0].Name != "page.txt" || documents[0].Text != "contents" {
		t.Fatalf("unexpected documents %+v", documents)
	}
}

func TestInlineFetcher(t *testing.T) {
	source := Source{Name: "notes", Documents: []InlineDocument{{Name: "one", Text: "1"}, {Text: "2"}}}

	documents, err := (&InlineFetcher{}).Fetch(context.Background(), nil, source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(documents); !reflect.DeepEqual(got, []string{"one", "document-2"}) {
		t.Fatalf("unexpected names %v", got)
	}
}

func TestConfigMapFetcher(t *testing.T) {
	clientset := fake.NewClientset(&corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "pages", Namespace: "docs"},
		Data: map[string]string{
			"b.txt":   "beta",
			"a.txt":   "alpha",
			"empty":   "",
			"skip.md": "skipped",
		},
	})
	source := Source{Name: "pages", Namespace: "docs", Type: TypeConfigMap, Keys: []string{"a.txt", "b.txt", "empty"}}

	documents, err := (&ConfigMapFetcher{}).Fetch(context.Background(), clientset, source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(documents); !reflect.DeepEqual(got, []string{"a.txt", "b.txt"}) {
		t.Fatalf("unexpected keys %v", got)
	}
	if got := documents[0].Label(); got != "ConfigMap docs/pages/a.txt" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestConfigMapFetcherMissing(t *testing.T) {
	_, err := (&ConfigMapFetcher{}).Fetch(context.Background(), fake.NewClientset(), Source{Name: "absent", Type: TypeConfigMap})
	if err == nil || !strings.Contains(err.Error(), "failed to get configmap default/absent") {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

func TestConfigMapFetcherRequiresClient(t *testing.T) {
	_, err := (&ConfigMapFetcher{}).Fetch(context.Background(), nil, Source{Name: "pages", Type: TypeConfigMap})
	if err == nil || !strings.Contains(err.Error(), "kubernetes client is required") {
		t.Fatalf("expected missing client error, got %v", err)
	}
}

func TestSecretFetcher(t *testing.T) {
	clientset := fake.NewClientset(&corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "templates", Namespace: "default"},
		Data: map[string][]byte{
			"mail": []byte("hello\n"),
		},
	})

	documents, err := (&SecretFetcher{}).Fetch(context.Background(), clientset, Source{Name: "templates", Type: TypeSecret})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(documents) != 1 || documents[0].Text != "hello" || documents[0].Namespace != "default" {
		t.Fatalf("unexpected documents %+v", documents)
	}
}

func TestFetchAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.txt", "  padded  ")

	list := []Source{
		{Name: "files", Type: TypeDirectory, Path: dir, Transformations: []transformations.Config{{Type: "trim_space"}}},
		{Name: "inline", Type: TypeInline, Documents: []InlineDocument{{Name: "x", Text: "inline text"}}},
	}

	documents, err := FetchAll(context.Background(), nil, list)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Texts(documents); !reflect.DeepEqual(got, []string{"padded", "inline text"}) {
		t.Fatalf("unexpected texts %q", got)
	}
}

func TestFetchAllErrors(t *testing.T) {
	tests := []struct {
		source Source
		want   string
	}{
		{Source{Name: "untyped"}, `type is required for source "untyped"`},
		{Source{Name: "odd", Type: "Deployment"}, `unknown source type "Deployment"`},
		{Source{Name: "bad", Type: TypeInline, Documents: []InlineDocument{{Text: "x"}}, Transformations: []transformations.Config{{Type: "nope"}}}, "failed to apply transformation"},
	}
	for _, tc := range tests {
		_, err := FetchAll(context.Background(), nil, []Source{tc.source})
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("expected error containing %q, got %v", tc.want, err)
		}
	}
}

func TestAnyNeedsKubernetes(t *testing.T) {
	if AnyNeedsKubernetes([]Source{{Type: TypeDirectory}, {Type: TypeInline}}) {
		t.Fatalf("local sources should not need kubernetes")
	}
	if !AnyNeedsKubernetes([]Source{{Type: TypeDirectory}, {Type: TypeSecret}}) {
		t.Fatalf("secret source should need kubernetes")
	}
}
