package scanner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lichi50062/logstats/internal/config"
	scanerrors "github.com/lichi50062/logstats/internal/errors"
	"github.com/lichi50062/logstats/internal/extract"
	"github.com/lichi50062/logstats/internal/files"
	"github.com/lichi50062/logstats/internal/infrastructure"
	"github.com/lichi50062/logstats/internal/stats"
	"github.com/lichi50062/logstats/internal/validation"
	"github.com/lichi50062/logstats/pkg/contracts/domain"
)

// ProgressFunc is called after each file finishes extraction.
type ProgressFunc func(done, total int, file string)

// Scanner orchestrates one analysis run: validate the request, discover
// files, extract records from each file, and aggregate statistics.
type Scanner struct {
	logger    *slog.Logger
	cfg       config.ScanConfig
	validator *validation.RequestValidator
	extractor *extract.Extractor
	progress  ProgressFunc
}

// New creates a scanner with the given defaults
func New(logger *slog.Logger, cfg config.ScanConfig) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		logger:    logger,
		cfg:       cfg,
		validator: validation.New(logger),
		extractor: extract.New(logger),
	}
}

// WithProgress registers a progress callback and returns the scanner.
func (s *Scanner) WithProgress(fn ProgressFunc) *Scanner {
	s.progress = fn
	return s
}

// WithLineObserver forwards a per-line diagnostic observer to the extractor.
func (s *Scanner) WithLineObserver(obs extract.LineObserver) *Scanner {
	s.extractor.WithObserver(obs)
	return s
}

// Run executes one analysis. Per-file read failures are logged and counted
// but never abort the run; validation failures abort before any file is
// read. A run with zero extracted records is a normal outcome: the result
// carries zero-valued overall statistics and an empty per-file map.
func (s *Scanner) Run(ctx context.Context, req domain.ScanRequest) (*domain.ScanResult, error) {
	start := time.Now()
	runID := uuid.New().String()
	ctx = infrastructure.WithRunID(ctx, runID)

	if err := s.validator.ValidateRequest(&req); err != nil {
		return nil, err
	}

	excluded := s.cfg.ExcludedExtensions
	if req.ExcludedExtensions != nil {
		excluded = req.ExcludedExtensions
	}
	discovery := files.NewDiscovery(s.logger, excluded)
	if err := discovery.WithPattern(req.Pattern); err != nil {
		return nil, scanerrors.InvalidInput(err.Error())
	}

	found, err := discovery.FindLogFiles(req.Dir)
	if err != nil {
		return nil, scanerrors.Internal("directory scan failed", err)
	}

	s.logger.InfoContext(ctx, "starting extraction",
		slog.String("dir", req.Dir),
		slog.String("prefix", req.Prefix),
		slog.String("suffix", req.Suffix),
		slog.Int("files", len(found)))

	workers := req.Workers
	if workers < 1 {
		workers = s.cfg.Workers
	}
	if workers < 1 {
		workers = 1
	}

	perFile, failed := s.extractAll(ctx, found, req, workers)

	// Flatten in enumeration order so the record sequence is deterministic
	// regardless of worker scheduling.
	var records []domain.Record
	for _, recs := range perFile {
		records = append(records, recs...)
	}

	result := &domain.ScanResult{
		Records:     records,
		Overall:     stats.Overall(records),
		PerFile:     stats.PerFile(records),
		FilesFound:  len(found),
		FilesFailed: failed,
		Elapsed:     time.Since(start),
	}

	s.logger.InfoContext(ctx, "extraction complete",
		slog.Int("files_found", result.FilesFound),
		slog.Int("files_failed", result.FilesFailed),
		slog.Int("records", len(result.Records)),
		slog.Duration("elapsed", result.Elapsed))

	return result, nil
}

// extractAll runs extraction over every discovered file, sequentially or
// with a bounded worker pool. It returns one record slice per input file,
// indexed like found, plus the count of unreadable files. Aggregation does
// not depend on completion order, so the merge is safe under concurrency.
func (s *Scanner) extractAll(ctx context.Context, found []files.FileInfo, req domain.ScanRequest, workers int) ([][]domain.Record, int) {
	perFile := make([][]domain.Record, len(found))

	var mu sync.Mutex
	done := 0
	failed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, fi := range found {
		i, fi := i, fi
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			content, err := files.ReadFileText(fi.Path)
			if err != nil {
				readErr := scanerrors.FileRead(fi.Path, err)
				s.logger.ErrorContext(ctx, "skipping unreadable file",
					slog.String("file", fi.Name),
					slog.String("error", readErr.Error()))
			} else {
				perFile[i] = s.extractor.Extract(content, req.Prefix, req.Suffix, fi.Name)
			}

			mu.Lock()
			if err != nil {
				failed++
			}
			done++
			current := done
			mu.Unlock()

			if s.progress != nil {
				s.progress(current, len(found), fi.Name)
			}
			if current%s.progressInterval() == 0 || current == len(found) {
				s.logger.InfoContext(ctx, "progress",
					slog.Int("processed", current),
					slog.Int("total", len(found)))
			}
			return nil
		})
	}

	_ = g.Wait()
	return perFile, failed
}

func (s *Scanner) progressInterval() int {
	if s.cfg.ProgressInterval < 1 {
		return 10
	}
	return s.cfg.ProgressInterval
}
