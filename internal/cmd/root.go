package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jersey-backend",
	Short: "JerseyPro store backend",
	Long: `JerseyPro backend serves the store API: order placement with atomic
stock reservation, order status workflow, newsletter subscriptions and
admin messaging.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
