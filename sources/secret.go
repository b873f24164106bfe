package sources

import (
	"context"
	"fmt"
	"sort"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

type SecretFetcher struct{}

func (f *SecretFetcher) Fetch(ctx context.Context, clientset kubernetes.Interface, source Source) ([]Document, error) {
	if err := requireClientset(clientset, source); err != nil {
		return nil, err
	}

	namespace := source.GetNamespace()
	secret, err := clientset.CoreV1().Secrets(namespace).Get(ctx, source.Name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret %s/%s: %w", namespace, source.Name, err)
	}

	keys := make([]string, 0, len(secret.Data))
	for key := range secret.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var documents []Document
	for _, key := range keys {
		value := secret.Data[key]
		if len(value) == 0 || !source.ShouldIncludeKey(key) {
			continue
		}
		documents = append(documents, Document{
			Name:       key,
			Text:       strings.TrimRight(string(value), "\n\r"),
			SourceType: TypeSecret,
			Source:     source.Name,
			Namespace:  namespace,
		})
	}

	return documents, nil
}
