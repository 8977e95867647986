// Package main provides the entry point for the ATS scorer CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/config"
	"github.com/jonathan/ats-scorer/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app holds state shared by all subcommands once configuration is loaded.
type app struct {
	configPath string
	cfg        *config.Config
	log        *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "ats_scorer",
		Short: "ATS resume scoring service",
		Long: `ATS scorer compares a resume with a job description using section-level
embedding similarity, heuristic bonuses and keyword overlap.

Configuration is read from ats-scorer.yaml (or --config), ATS_-prefixed
environment variables and flags, in increasing order of precedence.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to YAML config file (default ./ats-scorer.yaml if present)")
	root.PersistentFlags().Bool("debug", false, "Enable debug logging")
	root.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")

	root.AddCommand(
		newServeCmd(a),
		newScoreCmd(a),
		newKeyphrasesCmd(a),
		newVersionCmd(),
	)
	return root
}

// load reads configuration and builds the logger for the running command.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	v := config.NewViper()

	bindings := map[string]string{
		"log.debug":   "debug",
		"log.json":    "json-logs",
		"server.port": "port",

		"ingest.use-browser": "use-browser",
	}
	for key, flag := range bindings {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind --%s: %w", flag, err)
			}
		}
	}

	cfg, err := config.Load(v, a.configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.cfg = cfg
	a.log = log
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
