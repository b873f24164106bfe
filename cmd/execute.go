package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"strfilter/cache"
	"strfilter/config"
	"strfilter/sources"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

type executionResult struct {
	index int
	name  string
	paths []string
	err   error
}

var executeNames []string
var executeAll bool

var executeCmd = &cobra.Command{
	Use:   "execute",
	Short: "Run predefined filtering tasks",
	Long:  `Reads the configuration file and runs the predefined filtering tasks of the executions field concurrently.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.ResolvePath(configPath))
		if err != nil {
			return err
		}

		if len(cfg.Executions) == 0 {
			return fmt.Errorf("no executions found in configuration")
		}

		if len(cfg.Sources) == 0 {
			return fmt.Errorf("no sources found in configuration")
		}

		selectedExecutions, err := selectExecutions(cfg.Executions)
		if err != nil {
			return err
		}

		resultCache, closeCache, err := openCache(cfg.Cache)
		if err != nil {
			return err
		}
		defer closeCache()

		e := &executor{
			cfg: cfg,
			// Use default loading rules (respects KUBECONFIG env var)
			clients: newKubeClients(clientcmd.NewDefaultClientConfigLoadingRules()),
			cache:   resultCache,
			out:     cmd.OutOrStdout(),
		}

		results := make(chan executionResult, len(selectedExecutions))
		var wg sync.WaitGroup

		for i, execution := range selectedExecutions {
			wg.Add(1)
			go func() {
				defer wg.Done()

				e.printf("Executing: %s\n", execution.Name)
				paths, err := e.run(cmd.Context(), execution)
				results <- executionResult{index: i, name: execution.Name, paths: paths, err: err}
			}()
		}

		wg.Wait()
		close(results)

		var collected []executionResult
		for result := range results {
			collected = append(collected, result)
		}
		sort.Slice(collected, func(a, b int) bool {
			return collected[a].index < collected[b].index
		})

		var errors []string
		var paths []string
		for _, result := range collected {
			if result.err != nil {
				errors = append(errors, fmt.Sprintf("%s: %v", result.name, result.err))
				continue
			}
			paths = append(paths, result.paths...)
		}

		// Prompt only after every execution is done so questions do not interleave
		if err := ensureGitignored(e.out, cfg, paths); err != nil {
			return err
		}

		if len(errors) > 0 {
			return fmt.Errorf("execution errors:\n  %s", strings.Join(errors, "\n  "))
		}

		return nil
	},
}

func selectExecutions(all []config.Execution) ([]config.Execution, error) {
	if executeAll {
		return all, nil
	}

	executionMap := make(map[string]config.Execution)
	var executionNames []string
	for _, execution := range all {
		executionMap[execution.Name] = execution
		executionNames = append(executionNames, execution.Name)
	}

	names := executeNames
	if len(names) == 0 {
		prompt := &survey.MultiSelect{
			Message: "Select executions to run:",
			Options: executionNames,
		}

		if err := survey.AskOne(prompt, &names); err != nil {
			return nil, fmt.Errorf("execution selection failed: %w", err)
		}

		if len(names) == 0 {
			return nil, fmt.Errorf("no executions selected")
		}
	}

	var selected []config.Execution
	for _, name := range names {
		execution, ok := executionMap[name]
		if !ok {
			return nil, fmt.Errorf("execution %q not found in configuration", name)
		}
		selected = append(selected, execution)
	}
	return selected, nil
}

// executor runs executions that share a result cache and kube clients
type executor struct {
	cfg      *config.Config
	clients  *kubeClients
	cache    cache.Cache
	out      io.Writer
	outputMu sync.Mutex
}

func (e *executor) printf(format string, args ...any) {
	e.outputMu.Lock()
	defer e.outputMu.Unlock()
	fmt.Fprintf(e.out, format, args...)
}

func (e *executor) run(ctx context.Context, execution config.Execution) ([]string, error) {
	selected := selectSources(e.cfg.Sources, execution.Contexts)
	if len(selected) == 0 {
		return nil, fmt.Errorf("no sources match contexts %v", execution.Contexts)
	}

	var clientset kubernetes.Interface
	if sources.AnyNeedsKubernetes(selected) {
		if execution.KubeContext == "" {
			return nil, fmt.Errorf("execution %q requires Kubernetes sources but no kube-context is specified", execution.Name)
		}

		var err error
		clientset, err = e.clients.get(execution.KubeContext)
		if err != nil {
			return nil, err
		}
	}

	documents, err := sources.FetchAll(ctx, clientset, selected)
	if err != nil {
		return nil, err
	}

	p := &pipeline{
		cache:           e.cache,
		threshold:       e.cfg.ThresholdFor(execution),
		strategies:      e.cfg.StrategiesFor(execution),
		transformations: e.cfg.Transformations,
	}
	documents, err = p.run(ctx, documents)
	if err != nil {
		return nil, err
	}

	// Apply defaults for output
	directory := execution.Output.Directory
	if directory == "" {
		directory = filepath.Join("filtered", execution.Name)
	}

	paths, err := writeDocuments(documents, directory, execution.Output.Name)
	if err != nil {
		return nil, err
	}

	target := directory
	if execution.Output.Name != "" {
		target = paths[0]
	}
	e.printf("  [%s] Wrote %d documents to %s\n", execution.Name, len(documents), target)

	return paths, nil
}

func init() {
	executeCmd.Flags().StringArrayVar(&executeNames, "name", []string{}, "execution name to run (can be repeated)")
	executeCmd.Flags().BoolVar(&executeAll, "all", false, "run all executions")
	rootCmd.AddCommand(executeCmd)
}
