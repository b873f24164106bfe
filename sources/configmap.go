package sources

import (
	"context"
	"fmt"
	"sort"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// ConfigMapFetcher turns every data key of a ConfigMap into a document
type ConfigMapFetcher struct{}

func (f *ConfigMapFetcher) Fetch(ctx context.Context, clientset kubernetes.Interface, source Source) ([]Document, error) {
	if err := requireClientset(clientset, source); err != nil {
		return nil, err
	}

	namespace := source.GetNamespace()
	cm, err := clientset.CoreV1().ConfigMaps(namespace).Get(ctx, source.Name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get configmap %s/%s: %w", namespace, source.Name, err)
	}

	keys := make([]string, 0, len(cm.Data))
	for key := range cm.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var documents []Document
	for _, key := range keys {
		value := cm.Data[key]
		if value == "" || !source.ShouldIncludeKey(key) {
			continue
		}
		documents = append(documents, Document{
			Name:       key,
			Text:       value,
			SourceType: TypeConfigMap,
			Source:     source.Name,
			Namespace:  namespace,
		})
	}

	return documents, nil
}
