// Command logstats scans a directory of log files for duration values
// bracketed by a literal prefix and suffix, aggregates them into summary
// statistics, and writes an Excel report.
//
// Usage:
//
//	logstats [flags] <log-dir> <prefix> <suffix>
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/lichi50062/logstats/internal/config"
	scanerrors "github.com/lichi50062/logstats/internal/errors"
	"github.com/lichi50062/logstats/internal/exporter"
	"github.com/lichi50062/logstats/internal/infrastructure"
	"github.com/lichi50062/logstats/internal/scanner"
	"github.com/lichi50062/logstats/pkg/contracts"
	"github.com/lichi50062/logstats/pkg/contracts/domain"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("logstats", flag.ContinueOnError)
	output := fs.String("o", "", "output workbook path (defaults to a timestamped name in the configured output dir)")
	pattern := fs.String("pattern", "", "only scan files whose name matches this glob pattern")
	exclude := fs.String("exclude", "", "comma-separated extensions to skip, overriding the configured set (e.g. .exe,.bat,.dll)")
	workers := fs.Int("workers", 0, "concurrent file workers (0 uses the configured default)")
	configPath := fs.String("config", "logstats.yaml", "configuration file path")
	noProgress := fs.Bool("no-progress", false, "disable the progress bar")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: logstats [flags] <log-dir> <prefix> <suffix>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return 0
	}

	if fs.NArg() != 3 {
		fs.Usage()
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	req := domain.ScanRequest{
		Dir:     fs.Arg(0),
		Prefix:  fs.Arg(1),
		Suffix:  fs.Arg(2),
		Pattern: *pattern,
		Workers: *workers,
	}
	if *exclude != "" {
		req.ExcludedExtensions = parseExtensions(*exclude)
	}

	logger.Info("Starting duration analysis",
		slog.String("dir", req.Dir),
		slog.String("prefix", req.Prefix),
		slog.String("suffix", req.Suffix))

	s := scanner.New(logger, cfg.Scan)
	// The progress callback fires from worker goroutines, so bar creation
	// and updates are serialized.
	var barMu sync.Mutex
	var bar *progressbar.ProgressBar
	if !*noProgress {
		s.WithProgress(func(done, total int, file string) {
			barMu.Lock()
			defer barMu.Unlock()
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("Scanning files"),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionSetWidth(40),
					progressbar.OptionShowCount(),
					progressbar.OptionThrottle(65*time.Millisecond),
					progressbar.OptionShowElapsedTimeOnFinish(),
				)
			}
			_ = bar.Set(done)
		})
	}

	result, err := s.Run(context.Background(), req)
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		logger.Error("Analysis failed",
			slog.String("code", string(scanerrors.CodeOf(err))),
			slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if !result.HasRecords() {
		logger.Warn("No duration records matched the search criteria")
		fmt.Println("\nNo duration records matched the search criteria.")
		fmt.Printf("Check that files contain the prefix %q and suffix %q with a number between them.\n",
			req.Prefix, req.Suffix)
		return 0
	}

	outPath := *output
	if outPath == "" {
		outPath = filepath.Join(cfg.Export.OutputDir,
			exporter.DefaultOutputName(cfg.Export.FilePrefix, time.Now()))
	}

	if err := exporter.NewExcelExporter(logger).Export(result, outPath); err != nil {
		logger.Error("Export failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	printSummary(result, req, outPath)
	logger.Info("Analysis complete",
		slog.Int("files", result.FilesFound),
		slog.Int("records", result.Overall.Count),
		slog.String("output", outPath),
		slog.Duration("elapsed", result.Elapsed))
	return 0
}

// parseExtensions splits a comma-separated extension list, adding the
// leading dot where missing. "exe, .bat" becomes [".exe", ".bat"].
func parseExtensions(s string) []string {
	var exts []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.HasPrefix(part, ".") {
			part = "." + part
		}
		exts = append(exts, part)
	}
	return exts
}

func printSummary(result *domain.ScanResult, req domain.ScanRequest, outPath string) {
	o := result.Overall
	fmt.Println("\n--- Analysis summary ---")
	fmt.Printf("Search criteria - prefix: %q, suffix: %q\n", req.Prefix, req.Suffix)
	fmt.Printf("Files with records: %d\n", len(result.PerFile))
	fmt.Printf("Records found: %d\n", o.Count)
	fmt.Printf("Min:    %d ms\n", o.Min)
	fmt.Printf("Max:    %d ms\n", o.Max)
	fmt.Printf("Avg:    %.2f ms\n", o.Avg)
	fmt.Printf("Median: %.2f ms\n", o.Median)
	fmt.Printf("P95:    %.2f ms\n", o.P95)
	fmt.Printf("P99:    %.2f ms\n", o.P99)
	fmt.Printf("Report written to %s\n", outPath)
}
