package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/datachat/internal/intent"
)

var queryCmd = &cobra.Command{
	Use:   "query [session] [question]",
	Short: "Ask a natural-language question about an indexed dataset",
	Long: `Classifies the question by statistical intent, searches the session's data
chunks, and prints the most relevant excerpts. Requires persist: true in the
config so the index from a previous ingest is available.`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().Int("top-k", 0, "maximum number of results (0 uses the config default)")
	queryCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	sessionID, queryText := args[0], args[1]

	topK, _ := cmd.Flags().GetInt("top-k")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	retriever, err := createRetrievalService(cfg)
	if err != nil {
		return err
	}

	results, qi, err := retriever.Query(ctx, sessionID, queryText, topK)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if jsonOutput {
		return printQueryJSON(results, qi)
	}

	printQueryResults(results, qi)
	return nil
}

func printQueryJSON(results []string, qi intent.QueryIntent) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"results": results,
		"intent":  qi,
	})
}

func printQueryResults(results []string, qi intent.QueryIntent) {
	fmt.Printf("Intent: %s (confidence %.2f)\n", qi.Type, qi.Confidence)
	if len(qi.Variables) > 0 {
		fmt.Printf("Variables: %s\n", strings.Join(qi.Variables, ", "))
	}
	if qi.VisualizationType != "" {
		fmt.Printf("Visualization: %s\n", qi.VisualizationType)
	}

	if len(results) == 0 {
		fmt.Println("\nNo results found.")
		return
	}

	fmt.Printf("\nFound %d results:\n\n", len(results))
	for i, content := range results {
		fmt.Printf("  %d. %s\n\n", i+1, truncate(content, 300))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
