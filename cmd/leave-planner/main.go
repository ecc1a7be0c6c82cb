package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/username/leave-planner/internal/config"
	"github.com/username/leave-planner/internal/holiday"
	"github.com/username/leave-planner/internal/planner"
	"github.com/username/leave-planner/internal/render"
	"github.com/username/leave-planner/pkg/dateutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logger     *zap.Logger
	planWriter io.Writer = os.Stdout
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "leave-planner",
		Short: "Leave day optimizer",
		Long:  "Find the most efficient leave days around public holidays and weekends",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(holidaysCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func planCmd() *cobra.Command {
	var (
		year      int
		country   string
		leaves    int
		months    []int
		htmlPath  string
		teeOutput string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute the optimal leave schedule for a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			planWriter = os.Stdout
			if teeOutput != "" {
				if err := os.MkdirAll(filepath.Dir(teeOutput), 0o755); err != nil {
					return fmt.Errorf("failed to create tee path: %w", err)
				}
				f, err := os.OpenFile(teeOutput, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open tee-output file: %w", err)
				}
				defer f.Close()
				planWriter = io.MultiWriter(os.Stdout, f)
				color.NoColor = true
				fmt.Fprintf(planWriter, "📝 Output is mirrored to %s\n", teeOutput)
			}
			defer func() {
				planWriter = os.Stdout
			}()

			if country == "" {
				country = cfg.Planner.DefaultCountry
			}
			if leaves == 0 {
				leaves = cfg.Planner.DefaultLeaves
			}
			if year == 0 {
				year = dateutil.Today().Year()
			}

			p := planner.New(newProvider(cfg), cfg.Planner.MaxBridgeDays, logger)

			logger.Info("Planning leave schedule",
				zap.Int("year", year),
				zap.String("country", country),
				zap.Int("leaves", leaves),
				zap.Ints("months", months))

			result, err := p.Plan(planner.Request{
				Year:            year,
				Country:         country,
				NumLeaves:       leaves,
				PreferredMonths: months,
			})
			if err != nil {
				if errors.Is(err, holiday.ErrUnsupportedRegion) {
					return fmt.Errorf("no holiday data for region %q: %w", country, err)
				}
				return fmt.Errorf("planning failed: %w", err)
			}

			render.NewText(planWriter).Render(result)

			if htmlPath != "" {
				if err := writeHTML(htmlPath, result); err != nil {
					return err
				}
				fmt.Fprintf(planWriter, "✅ Calendar written to %s\n", htmlPath)
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "Year to plan (default: current year)")
	cmd.Flags().StringVar(&country, "country", "", "ISO country code (default from config)")
	cmd.Flags().IntVarP(&leaves, "leaves", "l", 0, "Leave day budget (default from config)")
	cmd.Flags().IntSliceVarP(&months, "months", "m", nil, "Preferred months 1-12 (default: all)")
	cmd.Flags().StringVar(&htmlPath, "html", "", "Also write an HTML calendar to this file")
	cmd.Flags().StringVar(&teeOutput, "tee-output", "", "Mirror plan output to file (empty to disable)")

	return cmd
}

func holidaysCmd() *cobra.Command {
	var (
		year    int
		country string
	)

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List public holidays for a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if country == "" {
				country = cfg.Planner.DefaultCountry
			}
			if year == 0 {
				year = dateutil.Today().Year()
			}

			set, err := newProvider(cfg).Holidays(country, year)
			if err != nil {
				if errors.Is(err, holiday.ErrUnsupportedRegion) {
					return fmt.Errorf("no holiday data for region %q (built-in regions: %s): %w",
						country, strings.Join(holiday.SupportedRegions(), ", "), err)
				}
				return fmt.Errorf("failed to fetch holidays: %w", err)
			}

			fmt.Printf("Public holidays in %s, %d:\n", country, year)
			for _, date := range set.SortedDates() {
				fmt.Printf("  %s  %s\n", date.Format("Mon, Jan 02"), set[date])
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "Year (default: current year)")
	cmd.Flags().StringVar(&country, "country", "", "ISO country code (default from config)")

	return cmd
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTML calendar over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			p := planner.New(newProvider(cfg), cfg.Planner.MaxBridgeDays, logger)
			renderer, err := render.NewHTML()
			if err != nil {
				return err
			}

			mux := http.NewServeMux()
			mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
				result, err := planFromQuery(p, cfg, r)
				if err != nil {
					status := http.StatusBadRequest
					if errors.Is(err, holiday.ErrUnsupportedRegion) {
						status = http.StatusNotFound
					}
					http.Error(w, err.Error(), status)
					return
				}
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				if err := renderer.Render(w, result); err != nil {
					logger.Error("Failed to render calendar page", zap.Error(err))
				}
			})

			logger.Info("Serving calendar", zap.String("addr", addr))
			fmt.Printf("Listening on http://%s (try /?year=%d&country=%s&leaves=%d)\n",
				addr, dateutil.Today().Year(), cfg.Planner.DefaultCountry, cfg.Planner.DefaultLeaves)

			return http.ListenAndServe(addr, mux)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "Listen address")

	return cmd
}

// planFromQuery builds a plan from year/country/leaves/months query
// parameters, falling back to configured defaults.
func planFromQuery(p *planner.Planner, cfg *config.Config, r *http.Request) (*planner.Result, error) {
	req := planner.Request{
		Year:      dateutil.Today().Year(),
		Country:   cfg.Planner.DefaultCountry,
		NumLeaves: cfg.Planner.DefaultLeaves,
	}

	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q", v)
		}
		req.Year = year
	}
	if v := q.Get("country"); v != "" {
		req.Country = v
	}
	if v := q.Get("leaves"); v != "" {
		leaves, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid leaves %q", v)
		}
		req.NumLeaves = leaves
	}
	if v := q.Get("months"); v != "" {
		for _, part := range strings.Split(v, ",") {
			month, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, fmt.Errorf("invalid month %q", part)
			}
			req.PreferredMonths = append(req.PreferredMonths, month)
		}
	}

	return p.Plan(req)
}

// newProvider wires the holiday source configured in holidays.source
func newProvider(cfg *config.Config) holiday.Provider {
	switch strings.ToLower(cfg.Holidays.Source) {
	case "builtin":
		logger.Info("Using built-in holiday rules")
		return holiday.NewRulesProvider(logger)

	case "api":
		logger.Info("Using Nager.Date holiday API")
		return holiday.NewAPIProvider(cfg.Holidays.APIURL, cfg.Holidays.GetCacheTTL(), logger)

	default: // composite
		logger.Info("Using Nager.Date API with built-in fallback")
		primary := holiday.NewAPIProvider(cfg.Holidays.APIURL, cfg.Holidays.GetCacheTTL(), logger)
		fallback := holiday.NewRulesProvider(logger)
		return holiday.NewCompositeProvider(primary, fallback, logger)
	}
}

func writeHTML(path string, result *planner.Result) error {
	renderer, err := render.NewHTML()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create HTML file: %w", err)
	}
	defer f.Close()

	if err := renderer.Render(f, result); err != nil {
		return err
	}
	return nil
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
