/*
Copyright © 2025 Your Name

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package handlers

import (
	"fmt"
	"os"

	"mediawatch/internal/config"
	"mediawatch/internal/logger"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "mediawatch",
		Short: "Mediawatch builds the weekly media-monitoring report from spreadsheet exports.",
		Long: `Mediawatch reads a media-monitoring workbook (one sheet per monitored
entity) and an optional workbook of official media reports, keeps only
authoritative first-hand coverage, removes duplicates and writes a
sectioned weekly report as .docx or Markdown.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cfgFile)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .mediawatch.yaml in . or $HOME)")

	rootCmd.AddCommand(NewReportCmd())
	rootCmd.AddCommand(NewSheetsCmd())
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command failed", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables, then applies the logging settings.
func initConfig(cfgFile string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	logging := config.GetLogging()
	if err := logger.Configure(logging.Level, logging.Format); err != nil {
		return err
	}

	if config.IsDebugMode() {
		logger.Debug("Debug mode enabled")
	}
	if cfg.App.ConfigFile != "" {
		logger.Debug("Using config file", "path", cfg.App.ConfigFile)
	}
	return nil
}
