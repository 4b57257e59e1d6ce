package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"communityboard/internal/api"
	"communityboard/internal/config"
	"communityboard/internal/logging"
	"communityboard/internal/session"
	"communityboard/internal/telemetry"
	"communityboard/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string
	apiURL     string
	stateDir   string

	// Loaded by PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
	traces *telemetry.Provider
)

// rootCmd runs the TUI.
var rootCmd = &cobra.Command{
	Use:   "communityboard",
	Short: "Terminal client for the community management backend",
	Long: `communityboard is a terminal client for the community backend.

Run without arguments to open the dashboard. Tabs:
  1 Dashboard      population statistics
  2 Announcements  published notices
  3 Post           publish a new announcement
  4 Profile        view and edit your profile (requires login)`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := traces.Shutdown(ctx); err != nil && logger != nil {
			logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.communityboard/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend base URL (or set "+config.APIURLEnv+")")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "State directory (or set "+config.StateDirEnv+")")

	serveFakeCmd.Flags().StringVar(&serveAddr, "addr", ":5000", "Listen address")
	serveFakeCmd.Flags().BoolVar(&serveEmpty, "empty", false, "Start without demo data")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(announcementsCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(serveFakeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config, then builds the logger and tracer provider.
func setup(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	if apiURL != "" {
		loaded.API.BaseURL = apiURL
	}
	if stateDir != "" {
		loaded.StateDir = stateDir
	}
	cfg = loaded

	logger, err = logging.New(cfg.LogPath(), cfg.Logging.Level, verbose)
	if err != nil {
		return err
	}

	traces, err = telemetry.Setup(context.Background(), cfg.Telemetry.ServiceName)
	if err != nil {
		// Tracing is optional; keep running without it.
		logger.Warn("telemetry disabled", zap.Error(err))
		traces = nil
	}
	logger.Debug("configuration loaded",
		zap.String("config", path),
		zap.String("api", cfg.API.BaseURL),
		zap.String("state_dir", cfg.StateDir))
	return nil
}

// newClient builds the API client from the loaded config.
func newClient() (*api.Client, time.Duration, error) {
	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, 0, err
	}
	client, err := api.New(cfg.API.BaseURL,
		api.WithLogger(logger),
		api.WithTimeout(timeout),
		api.WithTracer(telemetry.Tracer()),
	)
	if err != nil {
		return nil, 0, err
	}
	return client, timeout, nil
}

func openSession() (*session.Session, error) {
	return session.Open(cfg.StateDir)
}

// runTUI starts the interactive client.
func runTUI(cmd *cobra.Command, args []string) error {
	client, timeout, err := newClient()
	if err != nil {
		return err
	}
	sess, err := openSession()
	if err != nil {
		return err
	}

	deps := ui.Deps{
		API:     client,
		Session: sess,
		Logger:  logger,
		Timeout: timeout,
	}
	p := tea.NewProgram(ui.NewAppModel(deps).AsTeaModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
