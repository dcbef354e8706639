package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"planforge/pkg/application/services/orchestration"
	"planforge/pkg/infrastructure/config"
	"planforge/pkg/infrastructure/repositories/csv"
	"planforge/pkg/infrastructure/repositories/memory"
)

func main() {
	// A local .env is optional; environment beats file either way.
	_ = godotenv.Load()

	app := &cli.App{
		Name:     "planner",
		Usage:    "demand forecasting and time-phased supply risk planning",
		Commands: []*cli.Command{runCommand()},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "execute one planning run over a CSV scenario",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "scenario",
				Usage:    "directory holding the scenario CSV files",
				Required: true,
				EnvVars:  []string{"PLANFORGE_SCENARIO"},
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML configuration file",
				EnvVars: []string{"PLANFORGE_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "run-date",
				Usage: "planning date as YYYY-MM-DD (default: today)",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "text",
				Usage: "output format: text or json",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Action: runAction,
	}
}

func runAction(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Logging, c.Bool("verbose"))

	runDate := time.Now().Truncate(24 * time.Hour)
	if raw := c.String("run-date"); raw != "" {
		runDate, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return fmt.Errorf("invalid run-date %q: %w", raw, err)
		}
	}

	scenario, err := csv.NewLoader().LoadScenario(c.String("scenario"))
	if err != nil {
		return err
	}
	for _, warning := range scenario.Warnings {
		logger.Warn().Msg(warning.Error())
	}

	orchConfig, err := cfg.Orchestration()
	if err != nil {
		return err
	}

	if addr := cfg.Metrics.ListenAddr; addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if serveErr := http.ListenAndServe(addr, mux); serveErr != nil {
				logger.Error().Err(serveErr).Msg("metrics endpoint failed")
			}
		}()
		logger.Info().Str("addr", addr).Msg("serving metrics")
	}

	store := memory.NewRunRepository()
	orchestrator := orchestration.NewOrchestrator(
		orchConfig,
		scenario.Items,
		scenario.Demand,
		scenario.BOMs,
		scenario.Supply,
		store,
		logger,
	)

	result, err := orchestrator.Run(c.Context, runDate)
	if err != nil {
		return err
	}

	switch strings.ToLower(c.String("format")) {
	case "json":
		return renderJSON(os.Stdout, result)
	case "text":
		return renderText(os.Stdout, result)
	default:
		return fmt.Errorf("unknown format %q", c.String("format"))
	}
}

func newLogger(cfg config.LoggingConfig, verbose bool) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	var out = os.Stderr
	logger := zerolog.New(out)
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out})
	}
	return logger.Level(level).With().Timestamp().Logger()
}
