package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"hirepanel/internal/applicant"
	"hirepanel/internal/config"
	"hirepanel/internal/download"
	"hirepanel/internal/export"
	"hirepanel/internal/logging"
	"hirepanel/internal/store"
	"hirepanel/internal/store/postgres"
	"hirepanel/internal/store/sqlite"
	"hirepanel/internal/ui/textutil"
)

// Output formats.
const (
	formatTable = "table"
	formatCSV   = "csv"
	formatXLSX  = "xlsx"
)

const tableWidth = 110

// options holds the parsed CLI configuration for one listing.
type options struct {
	envFile     string
	driver      string
	db          string
	status      string
	query       string
	shortlisted bool
	format      string
	out         string
	seed        string
}

func parseFlags() options {
	var opts options

	flag.StringVar(&opts.envFile, "env", "", "path to a .env file (default .env if present)")
	flag.StringVar(&opts.driver, "driver", "", "store driver: memory, sqlite or postgres")
	flag.StringVar(&opts.db, "db", "", "sqlite path or postgres DSN, depending on the driver")
	flag.StringVar(&opts.status, "status", "All", "status filter: All, New, Reviewed, Shortlisted, Interview, Rejected")
	flag.StringVar(&opts.query, "q", "", "search candidate names and job titles")
	flag.BoolVar(&opts.shortlisted, "shortlisted", false, "only shortlisted applications")
	flag.StringVar(&opts.format, "format", formatTable, "output format: table, csv or xlsx")
	flag.StringVar(&opts.out, "out", "", "directory for csv/xlsx files (default download dir)")
	flag.StringVar(&opts.seed, "seed", "", "JSON file of applications to insert first")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: applicants [flags]\n\n")
		fmt.Fprintf(os.Stderr, "applicants lists or exports job applications matching a filter.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return opts
}

// filterFrom builds the applicant filter from the flags.
func filterFrom(opts options) (applicant.Filter, error) {
	f := applicant.Filter{
		Query:           opts.query,
		Status:          applicant.StatusAll,
		ShortlistedOnly: opts.shortlisted,
	}
	s := strings.TrimSpace(opts.status)
	if s == "" || strings.EqualFold(s, string(applicant.StatusAll)) {
		return f, nil
	}
	status, err := applicant.ParseStatus(s)
	if err != nil {
		return applicant.Filter{}, err
	}
	f.Status = status
	return f, nil
}

func openStore(cfg config.Config) (store.Store, error) {
	link := store.NewMeetingLinker(cfg.MeetingBaseURL)
	switch cfg.DBDriver {
	case config.DriverMemory:
		return store.NewMemory(link), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DBPath, link)
	case config.DriverPostgres:
		return postgres.Open(cfg.DatabaseURL, link)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.DBDriver)
	}
}

// writeTable prints records as aligned columns, with applied dates in loc.
func writeTable(w io.Writer, records []applicant.Application, dateFormat string, loc *time.Location) error {
	row := func(name, job, date, score, status string) string {
		return textutil.Row(tableWidth,
			textutil.Column{Text: name, Width: 0},
			textutil.Column{Text: job, Width: 28},
			textutil.Column{Text: date, Width: 12},
			textutil.Column{Text: score, Width: 5, AlignRight: true},
			textutil.Column{Text: status, Width: 11},
		)
	}
	lines := []string{row("Candidate", "Job", "Applied", "Match", "Status")}
	for _, a := range records {
		lines = append(lines, row(
			a.CandidateName,
			a.JobTitle,
			a.Timestamp.In(loc).Format(dateFormat),
			strconv.Itoa(a.MatchScore),
			string(a.Status),
		))
	}
	lines = append(lines, fmt.Sprintf("%d applications", len(records)))
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// writeFile exports records in format into dir and returns the path.
func writeFile(dir, format string, records []applicant.Application, now time.Time, dateFormat string, loc *time.Location) (string, error) {
	var (
		f   export.File
		ok  bool
		err error
	)
	switch format {
	case formatCSV:
		f, ok = export.CSV(records, now, dateFormat, loc)
	case formatXLSX:
		f, ok, err = export.XLSX(records, now, dateFormat, loc)
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errNothingToExport
	}
	d, err := download.NewStore(dir)
	if err != nil {
		return "", err
	}
	return d.Save(f)
}

var errNothingToExport = errors.New("no applications match; nothing exported")

func run(opts options, stdout io.Writer) error {
	if err := config.LoadEnvFile(opts.envFile); err != nil {
		return err
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
	if err := cfg.Validate(); err != nil {
		return err
	}
	if opts.out == "" {
		opts.out = cfg.DownloadDir
	}

	logger := logging.NewLogger(cfg.LogLevel, os.Stderr)
	slog.SetDefault(logger)

	filter, err := filterFrom(opts)
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.UpdateTimeout)
	defer cancel()

	if opts.seed != "" {
		records, err := applicant.LoadSeed(opts.seed)
		if err != nil {
			return err
		}
		if err := s.Insert(ctx, records...); err != nil {
			return fmt.Errorf("insert seed: %w", err)
		}
		logger.Info("seeded applications", slog.Int("count", len(records)))
	}

	all, err := s.List(ctx)
	if err != nil {
		return fmt.Errorf("list applications: %w", err)
	}
	visible := filter.Apply(all)
	logger.Debug("filtered applications",
		slog.Int("total", len(all)),
		slog.Int("visible", len(visible)),
		slog.String("status", string(filter.Status)),
		slog.String("query", filter.Query))

	if opts.format == formatTable {
		return writeTable(stdout, visible, cfg.DateFormat, time.Local)
	}
	path, err := writeFile(opts.out, opts.format, visible, time.Now(), cfg.DateFormat, time.Local)
	if errors.Is(err, errNothingToExport) {
		logger.Info("nothing to export", slog.String("format", opts.format))
		fmt.Fprintln(stdout, "No applications match; nothing to export")
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("exported applications", slog.String("format", opts.format), slog.Int("count", len(visible)))
	fmt.Fprintln(stdout, path)
	return nil
}

func main() {
	opts := parseFlags()
	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "applicants: %v\n", err)
		os.Exit(1)
	}
}
