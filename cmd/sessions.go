package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/datachat/internal/db"
	"github.com/ziadkadry99/datachat/internal/sessions"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded analysis sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := db.Open(filepath.Join(cfg.DataDir, "datachat.db"))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		list, err := sessions.NewStore(database).List(context.Background())
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("No sessions recorded.")
			return nil
		}

		for _, s := range list {
			fmt.Printf("%s  %-24s %6d rows %3d cols  %s\n",
				s.ID, s.Filename, s.RowCount, s.ColumnCount, s.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}
