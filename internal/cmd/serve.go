package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/claude/runsync/internal/config"
	"github.com/claude/runsync/internal/convert"
	"github.com/claude/runsync/internal/ics"
	"github.com/claude/runsync/internal/server"
	"github.com/claude/runsync/internal/upload"
)

var serveConfig string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sync pipeline as an HTTP service",
	Long: `Serve exposes the converter over HTTP: POST /api/v1/sync fetches the
calendar and converts (and uploads, when configured), GET /api/v1/workouts
previews the converted plan, and /metrics exposes Prometheus counters.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "config.yaml", "Path to YAML config file")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(serveConfig)
	if err != nil {
		return err
	}

	log := newLogger()

	calendar := ics.NewClient(cfg.Calendar.URL, log)
	conv := convert.New(nil, log)

	var uploads *upload.Client
	var state *upload.StateDB
	if cfg.Intervals.Upload {
		baseURL := cfg.Intervals.BaseURL
		if baseURL == "" {
			baseURL = upload.DefaultBaseURL
		}
		uploads = upload.NewClient(baseURL, cfg.Intervals.AthleteID, cfg.Intervals.APIKey, log)

		stateDir := cfg.Intervals.StateDir
		if stateDir == "" {
			stateDir = ".runsync"
		}
		state, err = upload.OpenStateDB(stateDir)
		if err != nil {
			return fmt.Errorf("opening state database: %w", err)
		}
		defer state.Close()
	}

	srv := server.New(calendar, conv, uploads, state, cfg.Server.APIKey, log)

	addr := cfg.Server.Addr()
	log.Info("starting server", "addr", addr, "upload", cfg.Intervals.Upload)
	if err := http.ListenAndServe(addr, srv); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
