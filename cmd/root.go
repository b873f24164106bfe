package cmd

import (
	"os"

	"strfilter/config"
	"strfilter/logging"

	"github.com/spf13/cobra"
)

var configPath string
var logLevel string
var skipGitignore bool

var rootCmd = &cobra.Command{
	Use:   "strfilter",
	Short: "A tool for removing text shared between documents",
	Long: `strfilter removes runs of text that two or more documents have in common, such as
boilerplate headers and footers, leaving what is unique to each document.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnv(); err != nil {
			return err
		}
		return logging.Setup(cmd.ErrOrStderr(), config.LogLevel(logLevel))
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the configuration file (default .strfilter.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (default info)")
	rootCmd.PersistentFlags().BoolVar(&skipGitignore, "skip-gitignore", false, "do not offer to add outputs to .gitignore")
}
