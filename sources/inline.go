package sources

import (
	"context"
	"fmt"

	"k8s.io/client-go/kubernetes"
)

type InlineFetcher struct{}

func (f *InlineFetcher) Fetch(ctx context.Context, clientset kubernetes.Interface, source Source) ([]Document, error) {
	var documents []Document
	for i, d := range source.Documents {
		name := d.Name
		if name == "" {
			name = fmt.Sprintf("document-%d", i+1)
		}
		documents = append(documents, Document{
			Name:       name,
			Text:       d.Text,
			SourceType: TypeInline,
			Source:     sourceName(source, "inline"),
		})
	}
	return documents, nil
}
