package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"

	"github.com/jayakishorers/jersey-backend/internal/adapter/storage"
	"github.com/jayakishorers/jersey-backend/internal/config"
)

var (
	seedProduct  string
	seedSizes    []string
	seedQuantity int
)

var seedCmd = &cobra.Command{
	Use:   "seed-stock",
	Short: "Set initial stock for a product",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedProduct, "product", "", "product id (required)")
	seedCmd.Flags().StringSliceVar(&seedSizes, "sizes", []string{"S", "M", "L", "XL"}, "sizes to seed")
	seedCmd.Flags().IntVar(&seedQuantity, "quantity", 100, "quantity per size")
	seedCmd.MarkFlagRequired("product")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	db, err := sql.Open("mysql", cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return err
	}

	if err := storage.EnsureSchema(ctx, db); err != nil {
		return err
	}

	ledger := storage.NewMySQLStockLedger(db)
	for _, size := range seedSizes {
		if err := ledger.SetStock(ctx, seedProduct, size, seedQuantity); err != nil {
			return fmt.Errorf("seed %s/%s: %w", seedProduct, size, err)
		}
		log.Printf("stock set: %s %s = %d", seedProduct, size, seedQuantity)
	}
	return nil
}
