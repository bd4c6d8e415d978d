package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kelsier27/investsim-backend/internal/adapter/repository/postgres"
	"github.com/kelsier27/investsim-backend/internal/usecase/loader"
	"github.com/kelsier27/investsim-backend/pkg/config"
	"github.com/kelsier27/investsim-backend/pkg/logger"
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load [file...]",
	Short: "Bulk-load CSV price history into the database",
	Long: `Loads one or more CSV files of daily prices into the price history table.

Expected columns: ticker,date,open,close,company
Rows are upserted by (ticker, date), so re-loading a file is safe.

Example:
  go run ./cmd/investsim load data/price_history.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	db, err := postgres.NewDB(cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	svc := loader.NewService(postgres.NewPriceRepository(db))

	total := 0
	for _, path := range args {
		n, err := svc.LoadFile(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		log.WithFields(map[string]interface{}{
			"file":    path,
			"records": n,
		}).Info("Loaded price file")
		total += n
	}

	fmt.Printf("Loaded %d price records from %d file(s)\n", total, len(args))
	return nil
}
