package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"wifi-finder.klederson.com/internal/app"
	"wifi-finder.klederson.com/internal/config"
	"wifi-finder.klederson.com/internal/haptic"
	"wifi-finder.klederson.com/internal/logging"
	"wifi-finder.klederson.com/internal/metrics"
	"wifi-finder.klederson.com/internal/wifi"
)

var (
	flagDemo        bool
	flagConfig      string
	flagIface       string
	flagTrack       string
	flagNoVibrate   bool
	flagLogFile     string
	flagLogLevel    string
	flagMetricsAddr string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wifi-finder",
		Short: "WiFi Finder - locate nearby access points and flag mobile hotspots",
		Long: `WiFi Finder lists nearby Wi-Fi access points, flags the ones that look
like phone hotspots, and tracks a single access point with a live distance
estimate and haptic feedback.

Uses nmcli (NetworkManager) or iw for scanning. Active scans with iw need
sudo or CAP_NET_ADMIN. Use --demo for demonstration mode without Wi-Fi hardware.`,
		SilenceUsage: true,
		RunE:         run,
	}

	f := rootCmd.Flags()
	f.BoolVar(&flagDemo, "demo", false, "Run in demo mode with simulated networks (no Wi-Fi required)")
	f.StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	f.StringVar(&flagIface, "iface", "", "Wi-Fi interface for the iw fallback (auto-detected when empty)")
	f.StringVar(&flagTrack, "track", "", "Start tracking this BSSID right away")
	f.BoolVar(&flagNoVibrate, "no-vibrate", false, "Disable haptic feedback while tracking")
	f.StringVar(&flagLogFile, "log-file", "", "Write JSON logs to this file (logs are discarded otherwise)")
	f.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9108")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var logOut io.Writer
	if flagLogFile != "" {
		fh, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer fh.Close()
		logOut = fh
	}
	logger := logging.NewLogger(cfg.LogLevel, logOut)

	var source wifi.Source
	if flagDemo {
		source = wifi.NewMockSource(time.Now().UnixNano())
	} else {
		if !wifi.ScannerAvailable() {
			fmt.Fprintln(os.Stderr, "\nError: neither nmcli nor iw was found in PATH.")
			fmt.Fprintln(os.Stderr, "Try one of:")
			fmt.Fprintln(os.Stderr, "  sudo apt install network-manager   (or iw)")
			fmt.Fprintln(os.Stderr, "  ./wifi-finder --demo    (demo mode, no hardware needed)")
			return errors.New("no wifi scanner available")
		}
		source = wifi.NewScanner(cfg.Interface)
	}

	reg := prometheus.NewRegistry()
	recorder := metrics.New(reg)
	if cfg.Metrics.Addr != "" {
		srv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           metricsMux(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "addr", cfg.Metrics.Addr, "error", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	actuator := haptic.Multi{
		haptic.NewBell(os.Stdout, 4),
		haptic.LogActuator{Logger: logger},
	}

	logger.Info("starting",
		slog.Bool("demo", flagDemo),
		slog.String("interface", cfg.Interface),
		slog.Int("max_scans", cfg.Throttle.MaxScans),
		slog.String("scan_window", cfg.Throttle.Window.String()),
	)

	model := app.New(app.Options{
		Source:      source,
		Config:      cfg,
		Actuator:    actuator,
		Metrics:     recorder,
		Logger:      logger,
		TrackTarget: flagTrack,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// loadConfig reads the optional config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("iface") {
		cfg.Interface = flagIface
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = flagMetricsAddr
	}
	if flagNoVibrate {
		cfg.Tracking.Vibration = false
	}
	return cfg, config.Validate(cfg)
}

func metricsMux(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(g))
	return mux
}
