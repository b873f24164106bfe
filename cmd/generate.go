package cmd

import (
	"fmt"

	"strfilter/config"
	"strfilter/sources"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

var kubeContext string
var outputDirectory string
var outputName string
var contextFlags []string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Filter the documents of the configured sources",
	Long: `Reads the configuration file, selects contexts and a kubectl context if needed, removes the text
shared between the documents of the selected sources and writes the result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.ResolvePath(configPath))
		if err != nil {
			return err
		}

		if len(cfg.Sources) == 0 {
			return fmt.Errorf("no sources found in configuration")
		}

		// Select contexts for filtering sources
		selectedContexts := contextFlags
		if len(selectedContexts) == 0 && len(cfg.Contexts) > 0 {
			prompt := &survey.MultiSelect{
				Message: "Select contexts (press Enter for none, Space to select):",
				Options: cfg.Contexts,
			}

			if err := survey.AskOne(prompt, &selectedContexts); err != nil {
				return fmt.Errorf("context selection failed: %w", err)
			}
		}

		selected := selectSources(cfg.Sources, selectedContexts)
		if len(selected) == 0 {
			return fmt.Errorf("no sources match the selected contexts")
		}

		// Only connect to a cluster if a selected source reads from one
		var clientset kubernetes.Interface
		if sources.AnyNeedsKubernetes(selected) {
			loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()

			selectedKubeContext := kubeContext
			if selectedKubeContext == "" {
				selectedKubeContext, err = selectKubeContext(loadingRules)
				if err != nil {
					return err
				}
			}

			clientset, err = newClientset(loadingRules, selectedKubeContext)
			if err != nil {
				return err
			}
		}

		documents, err := sources.FetchAll(cmd.Context(), clientset, selected)
		if err != nil {
			return err
		}

		resultCache, closeCache, err := openCache(cfg.Cache)
		if err != nil {
			return err
		}
		defer closeCache()

		p := &pipeline{
			cache:           resultCache,
			threshold:       cfg.Threshold,
			strategies:      cfg.Strategies,
			transformations: cfg.Transformations,
		}
		documents, err = p.run(cmd.Context(), documents)
		if err != nil {
			return err
		}

		paths, err := writeDocuments(documents, outputDirectory, outputName)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if outputName != "" {
			fmt.Fprintf(out, "Wrote %d documents to %s\n", len(documents), paths[0])
		} else {
			fmt.Fprintf(out, "Wrote %d documents to %s\n", len(documents), outputDirectory)
		}

		return ensureGitignored(out, cfg, paths)
	},
}

func init() {
	generateCmd.Flags().StringVar(&kubeContext, "kube-context", "", "kubectl context to use (prompts if needed and not provided)")
	generateCmd.Flags().StringVarP(&outputDirectory, "output-directory", "d", "filtered", "directory to write the filtered documents to")
	generateCmd.Flags().StringVarP(&outputName, "output-name", "o", "", "write all documents to this single file inside the output directory")
	generateCmd.Flags().StringArrayVarP(&contextFlags, "context", "c", []string{}, "context for filtering sources (can be repeated, prompts if not provided and contexts are defined)")
	rootCmd.AddCommand(generateCmd)
}
