package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stocknet.GO/config"
	"stocknet.GO/model"
	inventoryService "stocknet.GO/service/inventory"
)

var sweepCmd = &cobra.Command{
	Use:   "alerts:sweep",
	Short: "Run the warehouse alert sweep once and exit",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			os.Exit(1)
		}
		if err := model.AutoMigrate(db); err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}

		svc := inventoryService.NewService(db, config.LoadNetwork())
		res, err := svc.SweepAlerts(context.Background())
		if err != nil {
			fmt.Printf("Sweep failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Sweep done: checked=%d raised=%d cleared=%d skipped=%d\n",
			res.Checked, res.Raised, res.Cleared, res.Skipped)
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}
