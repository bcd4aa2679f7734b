package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/pders01/brief/internal/api"
	"github.com/pders01/brief/internal/config"
	"github.com/pders01/brief/internal/dashboard"
	"github.com/pders01/brief/internal/debuglog"
	"github.com/pders01/brief/internal/storage"
	"github.com/pders01/brief/internal/theme"
	"github.com/pders01/brief/internal/tui"
	"github.com/pders01/brief/internal/validation"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	configPath  string
	dbPath      string
	apiURL      string
	logLevel    string
	metricsAddr string
	quiet       bool
)

var rootCmd = &cobra.Command{
	Use:   "brief",
	Short: "Daily message briefing in your terminal",
	Long: `brief shows the email, Slack and Telegram summaries produced by the
briefing backend: urgent, mid and low priority email, a chosen Slack channel,
the Telegram business group and the daily summaries of each.`,
	SilenceUsage: true,
	RunE:         runDashboard,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("brief %s\n", Version)
		fmt.Println("Daily message briefing")
		fmt.Println("github.com/pders01/brief")
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configGenCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the default configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		path := configPath
		if path == "" {
			path = config.DefaultConfigFile()
		}
		if err := config.GenerateDefaultConfig(path); err != nil {
			log.Fatalf("Failed to generate config: %v", err)
		}
		fmt.Printf("Generated default configuration at: %s\n", path)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the default configuration file location",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.DefaultConfigFile())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "Path to preferences database (overrides config)")
	rootCmd.Flags().StringVar(&apiURL, "api-url", "", "Backend base URL (overrides config and API_URL)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, off")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "Skip startup banner")

	configCmd.AddCommand(configGenCmd, configPathCmd)
	rootCmd.AddCommand(versionCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyFlags lets command line flags win over the file and environment.
func applyFlags(cfg *config.Config) {
	if dbPath != "" {
		cfg.Database.Path = config.ExpandPath(dbPath)
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if metricsAddr != "" {
		cfg.Metrics.Addr = metricsAddr
	}
}

func setupLogging(cfg *config.Config) error {
	level := debuglog.ParseLogLevel(cfg.Log.Level)
	if level == debuglog.LevelOff {
		return debuglog.Setup(level)
	}
	path, err := validation.ValidateFilePath(cfg.Log.File)
	if err != nil {
		return fmt.Errorf("invalid log file: %w", err)
	}
	return debuglog.Setup(level, path)
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			debuglog.Errorf("metrics server on %s stopped: %v", addr, err)
		}
	}()
	return srv
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cfg)

	if err := setupLogging(cfg); err != nil {
		return err
	}
	defer debuglog.Close()

	dbFile, err := validation.ValidateFilePath(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("invalid database path: %w", err)
	}
	store, err := storage.NewStore(dbFile, cfg.Database.Timeout)
	if err != nil {
		return err
	}
	defer store.Close()

	palettes, err := theme.LoadPalettes(cfg.UI.Colors)
	if err != nil {
		return err
	}
	// Background detection queries the terminal, so it must finish before
	// the program takes over stdin.
	themes := theme.NewManager(store, palettes)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	client, err := api.NewClient(cfg, reg)
	if err != nil {
		return err
	}
	defer client.Close()

	if cfg.Metrics.Addr != "" {
		srv := serveMetrics(cfg.Metrics.Addr, reg)
		defer srv.Close()
	}

	debuglog.WithFields(map[string]interface{}{
		"version":  Version,
		"backend":  client.BaseURL(),
		"theme":    themes.Current().String(),
		"database": dbFile,
	}).Infof("starting brief")

	if !quiet {
		tui.ShowBanner(Version)
	}

	app := tui.NewApp(dashboard.NewStore(client), themes, cfg)
	defer app.Shutdown()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
