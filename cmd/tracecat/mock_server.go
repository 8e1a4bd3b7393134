// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	osSignal "os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/elastic/tracecat/internal/logging"
	"github.com/elastic/tracecat/internal/mockserver"
	"github.com/elastic/tracecat/internal/summarize"
)

var (
	mockAddrFlag      string
	mockFixtureFlag   string
	mockSyntheticFlag int
	mockSeedFlag      uint64
	mockLatencyFlag   time.Duration
)

var mockServerCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Run a local summarization backend for development",
	Long: `Serves POST /api/traces/summarize and GET /health over a fixed trace set.

Traces come from a YAML or JSON fixture (--fixture) or are generated
deterministically (--synthetic N). The summary is computed locally: success
rate, failure counts and span name frequencies.

Examples:
  tracecat mock-server --synthetic 50
  tracecat mock-server --fixture traces.yaml --latency 2s
  tracecat --api-url http://localhost:8000 ui`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMockServer(cmd)
	},
}

func init() {
	mockServerCmd.Flags().StringVar(&mockAddrFlag, "addr", ":8000", "Listen address")
	mockServerCmd.Flags().StringVar(&mockFixtureFlag, "fixture", "", "YAML or JSON file with traces")
	mockServerCmd.Flags().IntVar(&mockSyntheticFlag, "synthetic", 25, "Number of generated traces when no fixture is given")
	mockServerCmd.Flags().Uint64Var(&mockSeedFlag, "seed", 1, "Seed for generated traces")
	mockServerCmd.Flags().DurationVar(&mockLatencyFlag, "latency", 0, "Artificial delay before each summary")
	rootCmd.AddCommand(mockServerCmd)
}

func runMockServer(cmd *cobra.Command) error {
	cfg, err := loadedConfig(cmd.Context())
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, logging.SinkStderr)
	if err != nil {
		return err
	}
	defer closeLog()

	var traces []summarize.Trace
	if mockFixtureFlag != "" {
		traces, err = mockserver.LoadFixture(mockFixtureFlag)
		if err != nil {
			return err
		}
	} else {
		if mockSyntheticFlag < 0 {
			return fmt.Errorf("--synthetic must be >= 0, got %d", mockSyntheticFlag)
		}
		traces = mockserver.Synthesize(mockSyntheticFlag, mockSeedFlag, time.Now())
	}

	h := mockserver.NewHandler(mockserver.Options{
		Traces:  traces,
		Latency: mockLatencyFlag,
		Logger:  logger,
	})

	ctx, stop := osSignal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              mockAddrFlag,
		Handler:           mockserver.NewRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("mock server listening", "addr", mockAddrFlag, "traces", len(traces))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down mock server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
