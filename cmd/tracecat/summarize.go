// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/elastic/tracecat/internal/logging"
	"github.com/elastic/tracecat/internal/session"
)

var (
	countFlag  int
	outputFlag string
	expandFlag []string
)

// expandAll selects every trace for --expand.
const expandAll = "all"

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Print a summary of the most recent traces",
	Long: `Requests a summary of the most recent traces and prints it.

The count is clamped to 1-100. Use --expand with trace ids (or 'all') to
include span details, or --output json for the raw response.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch outputFlag {
		case "text", "json":
		default:
			return fmt.Errorf("unknown output %q (expected text, json)", outputFlag)
		}
		return runSummarize(cmd, cmd.OutOrStdout())
	},
}

func init() {
	addTelemetryFlags(summarizeCmd)
	summarizeCmd.Flags().IntVarP(&countFlag, "count", "n", 0, "Number of traces to analyze, 1-100 (default: query.default_count)")
	summarizeCmd.Flags().StringVarP(&outputFlag, "output", "o", "text", "Output format: text, json")
	summarizeCmd.Flags().StringSliceVar(&expandFlag, "expand", nil, "Trace ids to show span details for, or 'all'")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, out io.Writer) error {
	cfg, err := loadedConfig(cmd.Context())
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg, logging.SinkStderr)
	if err != nil {
		return err
	}
	defer closeLog()

	observer, closeObserver := newObserver(cmd.Context(), cfg, logger)
	defer closeObserver()

	count := cfg.Query.DefaultCount
	if cmd.Flags().Changed("count") {
		count = session.ClampCount(countFlag)
	}

	sess := session.New(cmd.Context(), session.Options{
		Summarizer: newClient(cfg, logger),
		Count:      count,
		Logger:     logger,
		Observer:   observer,
	})
	defer sess.Close()

	snap := sess.Submit()
	if snap.Phase == session.PhaseError {
		return errors.New(snap.Err)
	}

	if outputFlag == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap.Result)
	}

	expandTraces(sess, expandFlag)
	newReportRenderer(out, sess.IsExpanded).Render(snap.Result)
	return nil
}

// expandTraces toggles the requested traces open on a successful session.
func expandTraces(sess *session.Session, ids []string) {
	result := sess.Result()
	if result == nil || len(ids) == 0 {
		return
	}
	all := slices.Contains(ids, expandAll)
	for _, t := range result.Traces {
		if (all || slices.Contains(ids, t.TraceID)) && !sess.IsExpanded(t.TraceID) {
			sess.Toggle(t.TraceID)
		}
	}
}
