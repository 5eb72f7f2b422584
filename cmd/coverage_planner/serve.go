package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wallbotics/coverage-planner/internal/config"
	"github.com/wallbotics/coverage-planner/internal/server"
)

var (
	servePort   int
	serveDB     string
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing the planning, trajectory and playback endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "postgres:// URL or SQLite file path (default coverage_planner.db)")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := &config.Config{Port: servePort, DatabaseURL: serveDB}
	if serveConfig != "" {
		fileCfg, err := config.Load(serveConfig)
		if err != nil {
			return err
		}
		cfg.Merge(fileCfg)
	}
	cfg.Merge(config.FromEnv())
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.New(server.Config{Port: cfg.Port, DatabaseURL: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}
