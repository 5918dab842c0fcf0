// Package main implements the cv_builder CLI: edit a CV document file, preview it, export it
// to PDF, or serve the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/logger"
	"github.com/spf13/cobra"
)

// app carries state shared by every command of one invocation.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "cv_builder",
		Short:         "Build a CV and export it as a paginated A4 PDF",
		Long:          "cv_builder edits a CV document stored as JSON, renders its HTML preview, exports it to a multi-page A4 PDF through headless Chrome, and serves the same features over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.loadConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format (json or pretty)")

	rootCmd.AddCommand(
		newNewCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newSetCmd(a),
		newPhotoCmd(a),
		newValidateCmd(a),
		newShowCmd(a),
		newPreviewCmd(a),
		newExportCmd(a),
		newInspectCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

// loadConfig resolves Defaults, the config file, the environment and the log flags, in that
// order, and initializes logging.
func (a *app) loadConfig() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(cfg.Log)
	a.cfg = cfg
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
