// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	osSignal "os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/elastic/tracecat/internal/config"
	"github.com/elastic/tracecat/internal/logging"
	"github.com/elastic/tracecat/internal/tui"
)

var (
	defaultCountFlag  int
	autoSubmitFlag    bool
	watchProfilesFlag bool
	otlpEndpointFlag  string
	otlpEnabledFlag   bool
	otlpInsecureFlag  bool
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive trace explorer",
	Long: `Opens the terminal UI: pick how many recent traces to analyze, generate a
summary, and expand individual traces to see their spans.

The active profile file is watched; editing it switches the backend without
restarting.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func init() {
	addTelemetryFlags(uiCmd)
	uiCmd.Flags().IntVar(&defaultCountFlag, "default-count", config.DefaultCount, "Initial number of traces to analyze (env: TRACECAT_QUERY_DEFAULT_COUNT)")
	uiCmd.Flags().BoolVar(&autoSubmitFlag, "auto-submit", false, "Generate a summary on startup (env: TRACECAT_TUI_AUTO_SUBMIT)")
	uiCmd.Flags().BoolVar(&watchProfilesFlag, "watch-profiles", true, "Reload the backend when the profile file changes (env: TRACECAT_TUI_WATCH_PROFILES)")
	rootCmd.AddCommand(uiCmd)
}

// addTelemetryFlags registers the OTLP flags on commands that issue requests.
func addTelemetryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&otlpEndpointFlag, "otlp", config.DefaultOTLPEndpoint, "OTLP HTTP endpoint for request events (env: TRACECAT_OTLP_ENDPOINT)")
	cmd.Flags().BoolVar(&otlpEnabledFlag, "otlp-enabled", false, "Export request events over OTLP (env: TRACECAT_OTLP_ENABLED)")
	cmd.Flags().BoolVar(&otlpInsecureFlag, "otlp-insecure", true, "Use an insecure OTLP connection (env: TRACECAT_OTLP_INSECURE)")
}

func runTUI(cmd *cobra.Command) error {
	cfg, err := loadedConfig(cmd.Context())
	if err != nil {
		return err
	}

	notifyCtx, stop := osSignal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// stdout belongs to the screen, so logs go to a file or nowhere.
	logger, closeLog, err := newLogger(cfg, logging.SinkDiscard)
	if err != nil {
		return err
	}
	defer closeLog()

	observer, closeObserver := newObserver(notifyCtx, cfg, logger)
	defer closeObserver()

	opts := tui.Options{
		Backend:    backendFor(cfg, logger),
		Count:      cfg.Query.DefaultCount,
		AutoSubmit: cfg.TUI.AutoSubmit,
		Logger:     logger,
		Observer:   observer,
	}

	if cfg.TUI.WatchProfiles {
		path, err := config.GetConfigPath()
		if err != nil {
			logger.Warn("profile watching disabled", "error", err)
		} else {
			opts.WatchPath = path
			opts.Reload = func() (tui.Backend, error) {
				next, err := config.Load(cmd)
				if err != nil {
					return tui.Backend{}, err
				}
				return backendFor(next, logger), nil
			}
		}
	}

	logger.Info("starting ui", "api", cfg.API.URL, "profile", cfg.ProfileName, "count", cfg.Query.DefaultCount)
	return tui.Run(notifyCtx, opts)
}
