// Package main provides the argumate binary entry point.
// ArguMate is a legal-assistant backend for Indian law: it explains FIRs,
// validates drafts, builds arguments, retrieves similar cases, generates
// timelines, predicts outcomes and answers general legal questions.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	// Register LLM providers via init()
	_ "github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/llm/providers"

	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/api"
	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/auth"
	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/config"
	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/llm"
	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/record"
	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/store"
	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/task"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "argumate"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "argumate",
		Short: "ArguMate legal-assistant backend",
		Long: `ArguMate is a legal-assistant backend for Indian law.

It serves an authenticated HTTP API that:
- Explains FIRs in plain language with IPC section analysis
- Validates user-drafted FIRs
- Builds prosecution and defense arguments from a case summary
- Retrieves similar precedent cases
- Generates case timelines and predicts judgment outcomes
- Answers general legal questions in a chat

Completions come from OpenRouter and Gemini; every interaction is
recorded best-effort in a per-user store.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, addr, logLevel)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func run(configPath, addr, logLevel string) error {
	logger := newLogger(logLevel)
	slog.SetDefault(logger)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	client := llm.NewClient(map[string]llm.Endpoint{
		"openrouter": {URL: cfg.LLM.OpenRouter.URL, APIKey: cfg.LLM.OpenRouter.APIKey},
		"gemini":     {URL: cfg.LLM.Gemini.URL, APIKey: cfg.LLM.Gemini.APIKey},
	}, llm.WithTimeout(cfg.LLM.Timeout), llm.WithLogger(logger))

	verifier, err := auth.NewJWTVerifier(cfg.Auth.Secret)
	if err != nil {
		return fmt.Errorf("configure auth: %w", err)
	}

	recorder := record.NewRecorder(st, record.WithLogger(logger))
	orch := task.NewOrchestrator(client, recorder, logger)
	server := api.NewServer(orch, verifier, logger)

	logger.Info("ArguMate ready",
		"version", Version,
		"addr", cfg.Server.Addr,
		"store", cfg.Store.Backend)

	return server.Run(ctx, cfg.Server.Addr)
}

// newLogger builds the process logger at the requested level.
func newLogger(logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig resolves the effective configuration: file (when given) over
// defaults, then environment overlays.
func loadConfig(configPath string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// newStore opens the configured store backend.
func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreSQLite:
		return store.NewSQLiteStore(cfg.Store.Path)
	case config.StoreNATS:
		return store.NewNATSStore(ctx, cfg.Store.NATSURL)
	case config.StoreMemory:
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
