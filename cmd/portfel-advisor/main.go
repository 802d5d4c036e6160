package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/app"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/common"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/config"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/server"
)

// configPaths is a custom flag type that allows multiple -config flags.
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles configPaths
	serverPort  = flag.Int("port", 0, "Server port (overrides config)")
	serverHost  = flag.String("host", "", "Server host (overrides config)")
	showVersion = flag.Bool("version", false, "Print version information")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("portfel-advisor version %s\n", config.GetFullVersion())
		os.Exit(0)
	}

	// Auto-discover config file if not specified. Binary-relative paths
	// are tried first so the config is found even when the working
	// directory differs from the binary location.
	if len(configFiles) == 0 {
		for _, path := range configSearchPaths() {
			if _, err := os.Stat(path); err == nil {
				configFiles = append(configFiles, path)
				break
			}
		}
	}

	cfg, err := config.LoadFromFiles(configFiles...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// CLI flag overrides (highest priority)
	config.ApplyFlagOverrides(cfg, *serverPort, *serverHost)

	if issues := cfg.Validate(); len(issues) > 0 {
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Configuration error — mandatory fields are missing or invalid:")
		fmt.Fprintln(os.Stderr, "")
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "  - %s\n", issue)
		}
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Values can be set via TOML file, PORTFEL_* environment variables, or CLI flags.")
		fmt.Fprintln(os.Stderr, "")
		os.Exit(1)
	}

	logger := setupLogger(cfg)

	logger.Info().
		Int("port", cfg.Server.Port).
		Str("host", cfg.Server.Host).
		Str("storage", cfg.Storage.Driver).
		Str("config_files", fmt.Sprintf("%v", configFiles)).
		Msg("configuration loaded")

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error().Str("error", err.Error()).Msg("failed to initialize application")
		os.Exit(1)
	}

	// Arm the alarm runner and restore any stored schedule.
	application.Start(context.Background())

	srv := server.New(application)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error().Str("error", err.Error()).Msg("server failed to start")
			os.Exit(1)
		}
	}()

	logger.Info().
		Str("url", fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)).
		Msg("server ready")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Str("error", err.Error()).Msg("server shutdown failed")
	}

	if err := application.Close(); err != nil {
		logger.Error().Str("error", err.Error()).Msg("application shutdown failed")
	}

	logger.Info().Msg("server stopped")
}

// configSearchPaths returns TOML files to auto-discover (first match wins).
// Binary-relative paths are tried first, with CWD fallbacks after.
func configSearchPaths() []string {
	candidates := []string{
		"portfel-advisor.toml",
		"config/portfel-advisor.toml",
	}

	exe, err := os.Executable()
	if err != nil {
		return candidates
	}
	binDir := filepath.Dir(exe)

	paths := []string{
		filepath.Join(binDir, "portfel-advisor.toml"),
		filepath.Join(binDir, "config", "portfel-advisor.toml"),
	}
	paths = append(paths, candidates...)

	seen := make(map[string]bool, len(paths))
	deduped := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		deduped = append(deduped, p)
	}
	return deduped
}

// setupLogger creates an arbor logger based on config.
func setupLogger(cfg *config.Config) *common.Logger {
	return common.NewLoggerFromConfig(common.LoggingConfig{
		Level:      cfg.Logging.Level,
		Outputs:    cfg.Logging.Outputs,
		FilePath:   cfg.Logging.FilePath,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
}
