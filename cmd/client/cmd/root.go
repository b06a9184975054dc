package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"dresscode/cmd/client/cmd/types"
	"dresscode/internal/app"
	"dresscode/internal/config"
	"dresscode/internal/logger"
)

var (
	cfg         *config.Client
	log         *slog.Logger
	application *app.App
	jsonOutput  bool
	serverURL   string
)

var rootCmd = &cobra.Command{
	Use:   "dresscode",
	Short: "DressCode - outfit catalog client",
	Long: `DressCode is an offline-first client for the outfit catalog.

Browsed pages are cached locally, so the feed, favorites and search history
stay available without a network connection. Favorites, uploads and deletes
go to the server first and the cache follows.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: teardownApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg = config.MustLoadClient()
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}

	log = logger.New(cfg.Env)

	var err error
	application, err = app.New(cfg, log)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}

	ctx := context.WithValue(cmd.Context(), types.AppKey, application)
	ctx = context.WithValue(ctx, types.JSONKey, jsonOutput)
	cmd.SetContext(ctx)
	return nil
}

func teardownApp(_ *cobra.Command, _ []string) error {
	if application == nil {
		return nil
	}
	return application.Close()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of tables")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "catalog server URL")
}
