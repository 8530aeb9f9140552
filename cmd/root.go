package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stocknet",
	Short: "Multi-tier retail inventory ledger and replenishment engine",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		banner()
	},
}

func banner() {
	fonts := []string{"banner", "big", "slant", "standard", "small", "shadow", "speed", "thick", "doom", "larry3d", "puffy", "rectangles"}
	fig := figure.NewFigure("StockNet", fonts[rand.Intn(len(fonts))], true)
	fig.Print()
	fmt.Println()
}

// Execute runs the CLI, including commands registered via Register.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
