package main

import (
	"fmt"

	"github.com/spf13/cobra"

	applog "github.com/ironsheep/fview-histogram/internal/log"
	"github.com/ironsheep/fview-histogram/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdin/stdout (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	applog.Info("starting fview-histogram MCP server",
		"version", Version,
		"build_time", BuildTime,
		"commit", GitCommit)

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}
	applog.Debug("plugins registered",
		"plugins", srv.Host().Registry().Names(),
		"update_interval", srv.Histogram().Interval())
	if err := srv.Run(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
