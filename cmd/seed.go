package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stocknet.GO/config"
	"stocknet.GO/model"
	inventoryRepo "stocknet.GO/model/repository/inventory"
)

var seedCmd = &cobra.Command{
	Use:   "inventory:seed",
	Short: "Seed the demo network: full stock for every sweep product at every location",
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

		net := config.LoadNetwork()
		repo := inventoryRepo.NewInventoryRepository(db)
		seeded := 0

		seed := func(locationID, locationName string) {
			defs := net.DefaultsFor(locationID)
			for _, productID := range net.SweepProducts {
				_, err := repo.AdjustOrCreate(productID, "Product "+productID,
					locationID, locationName, net.Region(locationID), defs.TotalStock,
					inventoryRepo.Defaults{
						TotalStock:   defs.TotalStock,
						MinThreshold: defs.MinThreshold,
						MaxThreshold: defs.MaxThreshold,
					})
				if err != nil {
					fmt.Printf("  [warn] %s at %s: %v\n", productID, locationID, err)
					continue
				}
				seeded++
			}
		}

		seed(net.CentralID, net.CentralName)
		for _, wh := range net.Warehouses {
			seed(wh.ID, wh.Name)
		}
		for region, stores := range net.RegionStores {
			for _, store := range stores {
				seed(store, fmt.Sprintf("%s Store %s", region, store))
			}
		}

		fmt.Printf("Seeded %d inventory records.\n", seeded)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
