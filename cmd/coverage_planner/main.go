// Package main provides the entry point for the coverage path planning service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coverage_planner",
	Short: "Boustrophedon coverage path planner",
	Long:  "Coverage path planning for wall-finishing robots: boustrophedon cellular decomposition with tour optimization, served over a REST API or run as a one-shot CLI plan.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
