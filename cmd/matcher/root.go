package main

import (
	"github.com/spf13/cobra"
)

const app = "matcher"

var (
	// Used for flags.
	cfgFile string
	debug   bool
	jsonLog bool

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "matcher scores resumes against a job description with Gemini",
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonLog, "json", "j", false, "json format for logging")

	rootCmd.AddCommand(newAnalyzeCmd())
}
