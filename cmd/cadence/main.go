package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zsiec/cadence/internal/combmask"
	"github.com/zsiec/cadence/internal/config"
	"github.com/zsiec/cadence/internal/deblend"
	"github.com/zsiec/cadence/internal/errors"
	"github.com/zsiec/cadence/internal/logger"
	"github.com/zsiec/cadence/internal/metrics"
	"github.com/zsiec/cadence/internal/restore"
	"github.com/zsiec/cadence/internal/scan"
	"github.com/zsiec/cadence/internal/video"
	"github.com/zsiec/cadence/internal/y4m"
	"github.com/zsiec/cadence/pkg/version"
)

func main() {
	var (
		configPath  string
		showVersion bool
		mode        string
		input       string
		output      string
		name        string
	)

	flag.StringVar(&configPath, "config", "configs/default.yaml", "Path to configuration file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.StringVar(&mode, "mode", "restore", "Operation: restore, find-comb, find-30p or find-60p")
	flag.StringVar(&input, "input", "", "Input y4m file")
	flag.StringVar(&output, "output", "", "Output y4m file (restore mode)")
	flag.StringVar(&name, "name", "", "Bookmark file name (scan modes, default per mode)")
	flag.Parse()

	// Show version and exit if requested
	if showVersion {
		fmt.Println(version.GetInfo().String())
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logrusLogger, err := logger.New(&cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	jobID := logger.NewJobID()
	log := logger.NewLogrusAdapter(logger.WithJob(logrusLogger, jobID))

	// Log startup information
	log.WithField("version", version.GetInfo().Short()).Info("Starting cadence restoration")
	log.WithField("config_path", configPath).Debug("Configuration loaded")

	if input == "" {
		log.Error("No input file given, use -input")
		os.Exit(1)
	}

	// Start metrics server if enabled
	if cfg.Metrics.Enabled {
		go startMetricsServer(cfg.Metrics, log)
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
	}()

	metrics.IncrementJobsActive()
	defer metrics.DecrementJobsActive()

	log = log.WithField("mode", mode)
	switch mode {
	case "restore":
		err = runRestore(ctx, cfg, log, input, output)
	case "find-comb", "find-30p", "find-60p":
		err = runScan(ctx, cfg, log, mode, input, name)
	default:
		log.WithField("mode", mode).Error("Unknown mode")
		os.Exit(2)
	}
	if err != nil {
		log.WithError(err).Fatal("Job failed")
	}

	log.Info("Job complete")
}

// runRestore reconstructs a progressive 23.976 fps stream from a 60i
// source left with periodic blends and writes it as y4m.
func runRestore(ctx context.Context, cfg *config.Config, log logger.Logger, input, output string) error {
	if output == "" {
		return fmt.Errorf("restore mode requires -output")
	}

	src, err := y4m.Open(input)
	if err != nil {
		return err
	}
	defer src.Close()

	log.WithFields(logger.Fields{
		"input":   input,
		"frames":  src.Len(),
		"rate":    src.FrameRate().String(),
		"pattern": cfg.Restore.Pattern,
	}).Info("Restoring cadence")

	opts := restore.Options{
		ChromaOnly: cfg.Restore.ChromaOnly,
		TFF:        cfg.Restore.TFF,
		Vinverse:   vinverseOptions(cfg),
	}
	out, err := restore.JIVTCDeblend(src, src.FrameRate(), cfg.Restore.Pattern, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	w, err := y4m.NewWriter(buf, src.Width(), src.Height(), video.FrameRate23_976, src.Colorspace())
	if err != nil {
		return err
	}

	for n := 0; n < out.Len(); n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		frame, err := out.Get(n)
		if err != nil {
			return err
		}
		if err := w.WriteFrame(frame); err != nil {
			return err
		}
		metrics.IncrementFrameEmitted("restore")
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	log.WithFields(logger.Fields{
		"output": output,
		"frames": w.Frames(),
	}).Info("Restore complete")
	return nil
}

// runScan runs one of the bookmark-producing passes over the input.
func runScan(ctx context.Context, cfg *config.Config, log logger.Logger, mode, input, name string) error {
	src, err := y4m.Open(input)
	if err != nil {
		return err
	}
	defer src.Close()

	log.WithFields(logger.Fields{
		"input":  input,
		"frames": src.Len(),
		"rate":   src.FrameRate().String(),
	}).Info("Scanning")

	sc := &scan.Scanner{
		Workers: cfg.Scan.Workers,
		Rate:    cfg.Scan.Rate,
		Logger:  log,
	}

	var frames []int
	switch mode {
	case "find-comb":
		if name == "" {
			name = "comb_list"
		}
		det, err := newDetector(cfg)
		if err != nil {
			return err
		}
		frames, err = sc.FindCombed(ctx, src, det)
		if err != nil {
			return err
		}
	case "find-30p":
		if name == "" {
			name = "30p_ranges"
		}
		if err := requireRate(src.FrameRate()); err != nil {
			return err
		}
		frames, err = sc.Find30p(ctx, src, cfg.Scan.MinLength30p, cfg.Scan.Threshold30p)
		if err != nil {
			return err
		}
	case "find-60p":
		if name == "" {
			name = "60p_ranges"
		}
		if err := requireRate(src.FrameRate()); err != nil {
			return err
		}
		det, err := newDetector(cfg)
		if err != nil {
			return err
		}
		frames, err = sc.Find60p(ctx, src, det, cfg.Scan.MinLength60p)
		if err != nil {
			return err
		}
	}

	if err := scan.WriteBookmarks(cfg.Scan.OutputDir, name, frames); err != nil {
		return err
	}

	log.WithFields(logger.Fields{
		"bookmarks": name + scan.BookmarksExt,
		"frames":    len(frames),
	}).Info("Scan complete")
	return nil
}

func newDetector(cfg *config.Config) (*combmask.Detector, error) {
	return combmask.NewDetector(combmask.DetectorOptions{
		Mask: combmask.Options{
			CThresh: cfg.Mask.CThresh,
			MThresh: cfg.Mask.MThresh,
			Metric:  cfg.Mask.Metric,
			Expand:  cfg.Mask.Expand,
		},
		BlockSize: cfg.Mask.BlockSize,
		MI:        cfg.Mask.MI,
	})
}

// vinverseOptions maps the config section onto the engine options. A
// disabled section turns into a zero limit, the engine's pass-through.
func vinverseOptions(cfg *config.Config) *deblend.VinverseOptions {
	if !cfg.Vinverse.Enabled {
		return &deblend.VinverseOptions{Limit: 0}
	}
	return &deblend.VinverseOptions{
		Strength: cfg.Vinverse.Strength,
		Limit:    cfg.Vinverse.Limit,
		Scale:    cfg.Vinverse.Scale,
		Mode:     cfg.Vinverse.Mode,
	}
}

// requireRate gates the cadence-specific scan passes on the exact 60i
// frame rate, the same check the restore entry point applies.
func requireRate(rate video.Rational) error {
	if !rate.Equals(video.FrameRate29_97) {
		return errors.NewInvalidFrameRateError(
			rate.Num, rate.Den, video.FrameRate29_97.Num, video.FrameRate29_97.Den)
	}
	return nil
}

// startMetricsServer starts the Prometheus metrics server
func startMetricsServer(cfg config.MetricsConfig, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.Handler())

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.WithField("addr", addr).Info("Starting metrics server")

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err).Error("Metrics server error")
	}
}
