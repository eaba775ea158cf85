package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "datachat",
	Short: "Intent-aware retrieval for conversational data analysis",
	Long: `Datachat indexes tabular datasets into a semantic vector database and
answers natural-language questions about them. Queries are classified by
statistical intent (descriptive, correlation, visualization, ...) and
matched against row, column, summary, and correlation chunks.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".datachat.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
