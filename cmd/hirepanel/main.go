package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"hirepanel/internal/activity"
	"hirepanel/internal/applicant"
	"hirepanel/internal/config"
	"hirepanel/internal/download"
	"hirepanel/internal/logging"
	"hirepanel/internal/store"
	"hirepanel/internal/store/postgres"
	"hirepanel/internal/store/sqlite"
	"hirepanel/internal/trace"
	"hirepanel/internal/ui"
)

// options holds the command-line overrides for a panel run.
type options struct {
	envFile     string
	driver      string
	db          string
	seed        string
	shortlisted bool
}

func parseFlags() options {
	var opts options

	flag.StringVar(&opts.envFile, "env", "", "path to a .env file (default .env if present)")
	flag.StringVar(&opts.driver, "driver", "", "store driver: memory, sqlite or postgres")
	flag.StringVar(&opts.db, "db", "", "sqlite path or postgres DSN, depending on the driver")
	flag.StringVar(&opts.seed, "seed", "", "JSON file of applications to insert before starting")
	flag.BoolVar(&opts.shortlisted, "shortlisted", false, "start in shortlisted-only mode")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: hirepanel [flags]\n\n")
		fmt.Fprintf(os.Stderr, "hirepanel reviews job applications and schedules interviews\n")
		fmt.Fprintf(os.Stderr, "in the terminal.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return opts
}

// loadConfig layers .env, the environment and the flags, in that order.
func loadConfig(opts options) (config.Config, error) {
	if err := config.LoadEnvFile(opts.envFile); err != nil {
		return config.Config{}, err
	}
	cfg := config.FromEnv()
	if opts.driver != "" {
		cfg.DBDriver = opts.driver
	}
	if opts.db != "" {
		if cfg.DBDriver == config.DriverPostgres {
			cfg.DatabaseURL = opts.db
		} else {
			cfg.DBPath = opts.db
		}
	}
	if opts.shortlisted {
		cfg.ShortlistedOnly = true
	}
	return cfg, cfg.Validate()
}

// openStore opens the configured store and wraps it with tracing.
func openStore(cfg config.Config, tracer *trace.Provider) (store.Store, error) {
	link := store.NewMeetingLinker(cfg.MeetingBaseURL)
	var (
		s   store.Store
		err error
	)
	switch cfg.DBDriver {
	case config.DriverMemory:
		s = store.NewMemory(link)
	case config.DriverSQLite:
		s, err = sqlite.Open(cfg.DBPath, link)
	case config.DriverPostgres:
		s, err = postgres.Open(cfg.DatabaseURL, link)
	default:
		err = fmt.Errorf("unknown store driver %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, err
	}
	return store.WithTracing(s, tracer.Tracer()), nil
}

func seed(ctx context.Context, s store.Store, path string) (int, error) {
	records, err := applicant.LoadSeed(path)
	if err != nil {
		return 0, err
	}
	if err := s.Insert(ctx, records...); err != nil {
		return 0, fmt.Errorf("insert seed: %w", err)
	}
	return len(records), nil
}

func run(opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logFile, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := logging.NewLogger(cfg.LogLevel, logFile)
	slog.SetDefault(logger)

	ctx := context.Background()
	tracer, err := trace.NewProvider(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		return fmt.Errorf("start tracing: %w", err)
	}
	defer func() {
		if err := tracer.Shutdown(context.Background()); err != nil {
			logger.Warn("tracer shutdown failed", slog.String("error", err.Error()))
		}
	}()

	s, err := openStore(cfg, tracer)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if opts.seed != "" {
		n, err := seed(ctx, s, opts.seed)
		if err != nil {
			return err
		}
		logger.Info("seeded applications", slog.Int("count", n), slog.String("path", opts.seed))
	}

	downloads, err := download.NewStore(cfg.DownloadDir)
	if err != nil {
		return fmt.Errorf("download dir: %w", err)
	}

	logger.Info("starting panel",
		slog.String("driver", cfg.DBDriver),
		slog.Bool("tracing", tracer.Enabled()),
		slog.String("downloads", downloads.BaseDir()))

	model := ui.NewAppModel(ui.AppContext{
		Store:           s,
		Activity:        activity.NewLog(activity.DefaultCapacity),
		Downloads:       downloads,
		Logger:          logger,
		DateFormat:      cfg.DateFormat,
		UpdateTimeout:   cfg.UpdateTimeout,
		RefreshInterval: cfg.RefreshInterval,
		ShortlistedOnly: cfg.ShortlistedOnly,
	}).AsTeaModel()
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func main() {
	opts := parseFlags()
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "hirepanel: %v\n", err)
		os.Exit(1)
	}
}
