// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elastic/tracecat/internal/config"
)

var (
	setProfileAPIURL    string
	setProfileAPIToken  string
	setProfileOTLP      string
	setProfileOTLPInsec bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration profiles",
	Long: `Manage backend profiles stored in ~/.config/tracecat/config.yaml.

Profiles hold the summarization backend URL and token, plus an optional OTLP
endpoint for request events.

Examples:
  tracecat config set-profile local --api-url http://localhost:8000
  tracecat config set-profile staging --api-url https://traces.example.com --api-token '${STAGING_TOKEN}'
  tracecat config use-profile staging
  tracecat config get-profiles
  tracecat --profile local ui`,
	// Profile management must work even when the active profile is broken.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

var useProfileCmd = &cobra.Command{
	Use:   "use-profile <name>",
	Short: "Set the current profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg, err := config.LoadProfiles()
		if err != nil {
			return fmt.Errorf("load profiles: %w", err)
		}

		if _, err := cfg.GetProfile(name); err != nil {
			return err
		}

		cfg.CurrentProfile = name
		if err := config.SaveProfiles(cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Switched to profile %q\n", name)
		return nil
	},
}

var setProfileCmd = &cobra.Command{
	Use:   "set-profile <name>",
	Short: "Create or update a profile",
	Long: `Create or update a profile. Only the given flags are changed on an existing
profile.

The token supports ${ENV_VAR} syntax to avoid storing it in plain text:
  tracecat config set-profile prod --api-url https://traces.example.com --api-token '${PROD_TOKEN}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg, err := config.LoadProfiles()
		if err != nil {
			return fmt.Errorf("load profiles: %w", err)
		}

		// Start from the existing profile so partial updates keep other fields
		profile, _ := cfg.GetProfile(name)

		if setProfileAPIURL != "" {
			profile.API.URL = setProfileAPIURL
		}
		if setProfileAPIToken != "" {
			profile.API.Token = setProfileAPIToken
		}
		if setProfileOTLP != "" {
			profile.OTLP.Endpoint = setProfileOTLP
		}
		if cmd.Flags().Changed("otlp-insecure") {
			insecure := setProfileOTLPInsec
			profile.OTLP.Insecure = &insecure
		}

		cfg.SetProfile(name, profile)

		if err := config.SaveProfiles(cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		if profile.HasPlainTextToken() {
			fmt.Fprintln(cmd.ErrOrStderr(), config.PlainTextTokenWarning())
			fmt.Fprintln(cmd.ErrOrStderr())
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Profile %q saved: %s\n", name, profile.Summary())
		return nil
	},
}

var getProfilesCmd = &cobra.Command{
	Use:     "get-profiles",
	Aliases: []string{"list-profiles", "profiles"},
	Short:   "List all profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadProfiles()
		if err != nil {
			return fmt.Errorf("load profiles: %w", err)
		}

		out := cmd.OutOrStdout()
		names := cfg.ListProfiles()
		if len(names) == 0 {
			fmt.Fprintln(out, "No profiles configured.")
			fmt.Fprintln(out, "Create one with: tracecat config set-profile <name> --api-url <url>")
			return nil
		}

		fmt.Fprintln(out, "PROFILES:")
		for _, name := range names {
			marker := "  "
			if name == cfg.CurrentProfile {
				marker = "* "
			}
			profile, _ := cfg.GetProfile(name)
			fmt.Fprintf(out, "%s%-20s  %s\n", marker, name, profile.Summary())
		}

		if cfg.CurrentProfile != "" {
			fmt.Fprintf(out, "\n* = current profile\n")
		}
		return nil
	},
}

var currentProfileCmd = &cobra.Command{
	Use:   "current-profile",
	Short: "Show the current profile name",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadProfiles()
		if err != nil {
			return fmt.Errorf("load profiles: %w", err)
		}

		if cfg.CurrentProfile == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No profile selected (using defaults)")
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), cfg.CurrentProfile)
		return nil
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete-profile <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg, err := config.LoadProfiles()
		if err != nil {
			return fmt.Errorf("load profiles: %w", err)
		}

		if err := cfg.DeleteProfile(name); err != nil {
			return err
		}

		if err := config.SaveProfiles(cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Profile %q deleted\n", name)
		return nil
	},
}

var viewConfigCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the full configuration (tokens masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadProfiles()
		if err != nil {
			return fmt.Errorf("load profiles: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(cfg.Profiles) == 0 && cfg.CurrentProfile == "" {
			fmt.Fprintln(out, "No configuration found.")
			fmt.Fprintln(out, "Create a profile with: tracecat config set-profile <name> --api-url <url>")
			return nil
		}

		fmt.Fprintln(out, cfg.String())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("get config path: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	// set-profile flags
	setProfileCmd.Flags().StringVar(&setProfileAPIURL, "api-url", "", "Summarization backend URL")
	setProfileCmd.Flags().StringVar(&setProfileAPIToken, "api-token", "", "Bearer token (supports ${ENV_VAR} syntax)")
	setProfileCmd.Flags().StringVar(&setProfileOTLP, "otlp", "", "OTLP endpoint for request events")
	setProfileCmd.Flags().BoolVar(&setProfileOTLPInsec, "otlp-insecure", true, "Use insecure OTLP connection")

	configCmd.AddCommand(useProfileCmd)
	configCmd.AddCommand(setProfileCmd)
	configCmd.AddCommand(getProfilesCmd)
	configCmd.AddCommand(currentProfileCmd)
	configCmd.AddCommand(deleteProfileCmd)
	configCmd.AddCommand(viewConfigCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}
