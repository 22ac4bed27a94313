package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"petstore-verify/internal/catalog"
	"petstore-verify/internal/config"
	"petstore-verify/internal/infra/fixture"
	"petstore-verify/internal/infra/probe"
	"petstore-verify/internal/observability/logging"
	"petstore-verify/internal/usecase/scenario"
	"petstore-verify/internal/verify"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitSetup  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fl := flag.NewFlagSet("inventory-verify", flag.ContinueOnError)
	fl.SetOutput(stderr)
	configPath := fl.String("config", "", "path to a TOML config file")
	envFile := fl.String("env-file", ".env", "dotenv file loaded before reading the environment")
	metricsAddr := fl.String("metrics-addr", "", "serve Prometheus metrics on this address while running (e.g. :9090)")
	if err := fl.Parse(args); err != nil {
		return exitSetup
	}

	if err := loadDotEnv(*envFile); err != nil {
		fmt.Fprintf(stderr, "load env file: %v\n", err)
		return exitSetup
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return exitSetup
	}

	logger := logging.New(stderr, cfg.Log.Format, cfg.Log.Level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *metricsAddr != "" {
		startMetricsServer(ctx, logger, *metricsAddr)
	}

	env, err := setupEnv(cfg)
	if err != nil {
		logger.Error("setup failed", slog.Any("error", err))
		return exitSetup
	}
	logger.Info("verification started",
		slog.String("base_url", cfg.BaseURL),
		slog.String("fixture_path", cfg.FixturePath),
		slog.Int("pets", env.Store.Len()),
		slog.Int("workers", cfg.Workers))

	start := time.Now()
	results := scenario.NewRunner(env, cfg.Workers, logger).Run(ctx, scenario.DefaultSuite())
	totals := scenario.Summarize(results)

	if err := scenario.WriteReport(stdout, results); err != nil {
		logger.Error("write report", slog.Any("error", err))
		return exitSetup
	}

	logger.Info("verification completed",
		slog.Int("passed", totals.Passed),
		slog.Int("failed", totals.Failed),
		slog.Int("errored", totals.Errored),
		slog.Duration("duration", time.Since(start)))

	if !totals.OK() {
		return exitFailed
	}
	return exitOK
}

// loadDotEnv loads path when it exists. Variables already set are kept.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func setupEnv(cfg *config.Config) (scenario.Env, error) {
	cat := catalog.Default()

	store, err := fixture.Load(cfg.FixturePath, cat)
	if err != nil {
		return scenario.Env{}, err
	}

	client, err := probe.NewClient(probe.Config{
		BaseURL:           cfg.BaseURL,
		Timeout:           time.Duration(cfg.Timeout),
		RequestsPerSecond: cfg.RequestsPerSecond,
		CircuitBreaker:    cfg.CircuitBreaker,
	}, cat)
	if err != nil {
		return scenario.Env{}, fmt.Errorf("create probe client: %w", err)
	}

	return scenario.Env{
		Store:  store,
		Client: client,
		Engine: verify.NewEngine(cat),
		Schema: cat,
	}, nil
}
