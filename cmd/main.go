// Package main provides the CLI entrypoint for the lead finder service.
// It wires subcommands (serve, run), loads configuration, and initializes logging.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"leadfinder/internal/config"
	"leadfinder/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	var (
		configPath string
		cfg        = &config.Config{}
	)

	rootCmd := &cobra.Command{
		Use:           "leadfinder",
		Short:         "Finds businesses and the email addresses their websites publish",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.Println("loading config ...")
			loaded, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("could not load config file: %w", err)
			}
			*cfg = *loaded

			if err := logger.Setup(cfg.Environment, cfg.LogLevel); err != nil {
				return fmt.Errorf("could not setup logger: %w", err)
			}

			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yml", "Config File Path")

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		runCommand(cfg),
	)

	err := rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		log.Println(err)
		os.Exit(1) //nolint: gocritic
	}
}
