package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"docdesk/internal/config"
	"docdesk/internal/logger"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "docctl",
	Short: "docctl - command-line tools for docdesk",
	Long: `docctl runs the docdesk document tools without the HTTP server.

Configuration is read from DOCDESK_* environment variables and an optional
.env file, the same way the server reads it.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logCfg := cfg.Log.Logger()
		// Logs go to stderr so command output stays machine readable.
		if logCfg.Output == "" || logCfg.Output == "stdout" {
			logCfg.Output = "stderr"
		}
		if _, err := logger.Setup(logCfg); err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
		appConfig = cfg
		return nil
	},
}

// appConfig is loaded before any subcommand runs.
var appConfig *config.Config

// Execute runs the root command.
func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
