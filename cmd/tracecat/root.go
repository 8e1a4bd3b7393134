// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/elastic/tracecat/internal/config"
	"github.com/elastic/tracecat/internal/logging"
	"github.com/elastic/tracecat/internal/session"
	"github.com/elastic/tracecat/internal/summarize"
	"github.com/elastic/tracecat/internal/telemetry"
	"github.com/elastic/tracecat/internal/tui"
)

// Global flags shared across commands.
// Values are bound via Viper; variables keep Cobra compatibility.
var (
	profileFlag    string
	apiURLFlag     string
	apiTokenFlag   string
	apiTimeoutFlag time.Duration
	logLevelFlag   string
	logFileFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "tracecat",
	Short: "Summarize recent agent traces",
	Long: `TraceCat - Ask a summarization backend about your most recent traces.

Open the interactive explorer with 'tracecat ui', or print a one-shot report
with 'tracecat summarize'. Point it at a backend with --api-url or a profile
('tracecat config set-profile').`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	// Global flags (Viper precedence: flags > env > profile > defaults)
	rootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "Configuration profile to use (env: TRACECAT_PROFILE)")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", config.DefaultAPIURL, "Summarization backend URL (env: TRACECAT_API_URL)")
	rootCmd.PersistentFlags().StringVar(&apiTokenFlag, "api-token", "", "Bearer token for the backend (env: TRACECAT_API_TOKEN)")
	rootCmd.PersistentFlags().DurationVar(&apiTimeoutFlag, "api-timeout", config.DefaultAPITimeout, "Per-request timeout (env: TRACECAT_API_TIMEOUT)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error (env: TRACECAT_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Write logs to this file (env: TRACECAT_LOG_FILE)")
}

// loadedConfig returns the config stored by PersistentPreRunE.
func loadedConfig(ctx context.Context) (config.Config, error) {
	cfg, ok := config.FromContext(ctx)
	if !ok {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}

// newClient builds the summarize client for cfg.
func newClient(cfg config.Config, logger *slog.Logger) *summarize.Client {
	return summarize.NewClient(summarize.ClientOptions{
		BaseURL: cfg.API.URL,
		Token:   cfg.API.Token,
		Timeout: cfg.API.Timeout,
		Logger:  logger,
	})
}

// backendFor pairs a client with the labels the UI shows for it.
func backendFor(cfg config.Config, logger *slog.Logger) tui.Backend {
	return tui.Backend{
		Summarizer:  newClient(cfg, logger),
		URL:         cfg.API.URL,
		ProfileName: cfg.ProfileName,
	}
}

// newObserver returns the OTLP emitter when enabled, or nil. The returned
// func flushes and shuts it down.
func newObserver(ctx context.Context, cfg config.Config, logger *slog.Logger) (session.Observer, func()) {
	if !cfg.OTLP.Enabled {
		return nil, func() {}
	}
	emitter, err := telemetry.New(ctx, telemetry.Config{
		Endpoint:       cfg.OTLP.Endpoint,
		Insecure:       cfg.OTLP.Insecure,
		ServiceVersion: version,
	})
	if err != nil {
		logger.Warn("OTLP export disabled", "endpoint", cfg.OTLP.Endpoint, "error", err)
		return nil, func() {}
	}
	logger.Debug("exporting request events", "endpoint", emitter.Endpoint())
	return emitter, func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := emitter.Close(shutdownCtx); err != nil {
			logger.Warn("OTLP shutdown failed", "error", err)
		}
	}
}

// newLogger builds the command logger from cfg.
func newLogger(cfg config.Config, fallback logging.Sink) (*slog.Logger, func(), error) {
	logger, closer, err := logging.New(cfg.Log.Level, cfg.Log.File, fallback)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = closer.Close() }, nil
}
