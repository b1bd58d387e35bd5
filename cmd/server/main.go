package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"pulsechat/internal/app"
	"pulsechat/internal/config"
	"pulsechat/internal/log"
)

func main() {
	var (
		configPath    string
		addr          string
		logLevel      string
		awayThreshold time.Duration
		journalPath   string
	)

	rootCmd := &cobra.Command{
		Use:          "pulsechat-server",
		Short:        "Presence-aware messaging server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// .env is optional; real env vars win over it.
			_ = godotenv.Load()

			logger := log.New(logLevel)

			cfg, path, err := config.Load(logger, configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger.Debug().Str("path", path).Msg("config resolved")

			// Explicit flags override file and env.
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("away-threshold") {
				cfg.AwayThreshold = awayThreshold
			}
			if cmd.Flags().Changed("journal") {
				cfg.JournalPath = journalPath
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
				logger = log.New(cfg.LogLevel)
			} else if cfg.LogLevel != "" {
				logger = log.New(cfg.LogLevel)
			}

			application, err := app.New(&cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info().Str("addr", cfg.Addr).Msg("starting pulsechat server")
			if err := application.Run(ctx); err != nil {
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	defaults := config.Default()
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.Flags().StringVar(&addr, "addr", defaults.Addr, "HTTP listen address")
	rootCmd.Flags().StringVar(&logLevel, "log-level", defaults.LogLevel, "log level (debug, info, warn, error)")
	rootCmd.Flags().DurationVar(&awayThreshold, "away-threshold", defaults.AwayThreshold, "idle duration before a user is marked away")
	rootCmd.Flags().StringVar(&journalPath, "journal", defaults.JournalPath, "path to the delivery journal database (empty disables)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
