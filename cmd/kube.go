package cmd

import (
	"fmt"
	"sort"
	"sync"

	"github.com/manifoldco/promptui"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// selectKubeContext asks which kubeconfig context to use
func selectKubeContext(loadingRules *clientcmd.ClientConfigLoadingRules) (string, error) {
	kubeConfig, err := loadingRules.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	var contextNames []string
	for name := range kubeConfig.Contexts {
		contextNames = append(contextNames, name)
	}
	if len(contextNames) == 0 {
		return "", fmt.Errorf("no kubectl contexts found in kubeconfig")
	}
	sort.Strings(contextNames)

	prompt := promptui.Select{
		Label: "Select kubectl context",
		Items: contextNames,
	}
	_, selected, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("kubectl context selection failed: %w", err)
	}
	return selected, nil
}

func newClientset(loadingRules *clientcmd.ClientConfigLoadingRules, kubeContext string) (kubernetes.Interface, error) {
	restConfig, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		loadingRules,
		&clientcmd.ConfigOverrides{CurrentContext: kubeContext},
	).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return clientset, nil
}

// kubeClients hands out one client per kube-context to concurrent executions
type kubeClients struct {
	loadingRules *clientcmd.ClientConfigLoadingRules
	cache        sync.Map
	mu           sync.Mutex
	// connect is swapped out in tests
	connect func(*clientcmd.ClientConfigLoadingRules, string) (kubernetes.Interface, error)
}

func newKubeClients(loadingRules *clientcmd.ClientConfigLoadingRules) *kubeClients {
	return &kubeClients{loadingRules: loadingRules, connect: newClientset}
}

func (k *kubeClients) get(kubeContext string) (kubernetes.Interface, error) {
	if cached, ok := k.cache.Load(kubeContext); ok {
		return cached.(kubernetes.Interface), nil
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	// Another execution may have connected while we waited
	if cached, ok := k.cache.Load(kubeContext); ok {
		return cached.(kubernetes.Interface), nil
	}

	clientset, err := k.connect(k.loadingRules, kubeContext)
	if err != nil {
		return nil, err
	}
	k.cache.Store(kubeContext, clientset)
	return clientset, nil
}
