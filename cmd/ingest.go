package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/datachat/internal/dataset"
	"github.com/ziadkadry99/datachat/internal/db"
	"github.com/ziadkadry99/datachat/internal/progress"
	"github.com/ziadkadry99/datachat/internal/sessions"
)

var ingestSessionID string

var ingestCmd = &cobra.Command{
	Use:   "ingest [csv file]",
	Short: "Index a CSV dataset for querying",
	Long: `Parses a CSV file, chunks it into row groups, column groups, a statistical
summary, and a correlation matrix, and indexes the chunks into the vector
store under a session. Requires persist: true in the config for the index to
survive the command.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestSessionID, "session", "", "session ID (generated if empty)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Persist {
		fmt.Fprintln(os.Stderr, "Warning: persist is disabled; the index will not survive this command")
	}

	retriever, err := createRetrievalService(cfg)
	if err != nil {
		return err
	}

	table, err := dataset.LoadCSVFile(path)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	sessionID := ingestSessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	reporter := progress.NewReporter()
	reporter.Start(3)
	reporter.Update(1, "Chunking dataset")

	info, err := retriever.Ingest(ctx, sessionID, table, filepath.Base(path))
	if err != nil {
		reporter.Finish()
		return fmt.Errorf("indexing dataset: %w", err)
	}
	reporter.Update(2, "Recording session")

	database, err := db.Open(filepath.Join(cfg.DataDir, "datachat.db"))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if _, err := sessions.NewStore(database).Create(ctx, sessions.Session{
		ID:          sessionID,
		Filename:    filepath.Base(path),
		RowCount:    table.NumRows(),
		ColumnCount: table.NumCols(),
		Columns:     table.Columns,
	}); err != nil {
		return fmt.Errorf("recording session: %w", err)
	}
	reporter.Update(3, "Done")
	reporter.Finish()

	fmt.Printf("Indexed %s: %d rows, %d columns, %d chunks\n", path, table.NumRows(), table.NumCols(), info.Count)
	fmt.Printf("Session: %s\n", sessionID)
	return nil
}
