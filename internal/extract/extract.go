package extract

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/lichi50062/logstats/pkg/contracts/domain"
)

// LineTrace captures the per-line match decision for diagnostic observers.
// It mirrors what the extractor saw while evaluating one line, whether or
// not the line produced a record.
type LineTrace struct {
	LineNum         int
	Line            string
	ContainsPrefix  bool
	ContainsSuffix  bool
	PrefixPositions []int
	SuffixPositions []int
	Matched         bool
	Value           int64
	Interior        string
}

// LineObserver receives one LineTrace per evaluated line. Observers must not
// retain the trace beyond the call.
type LineObserver func(trace LineTrace)

// Extractor scans raw log content for numeric values bracketed by a literal
// prefix and suffix pair.
type Extractor struct {
	logger   *slog.Logger
	observer LineObserver
}

// New creates an extractor. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// WithObserver registers a per-line diagnostic observer and returns the
// extractor for chaining. Passing nil removes the observer.
func (e *Extractor) WithObserver(obs LineObserver) *Extractor {
	e.observer = obs
	return e
}

// Extract scans content line by line and returns one record per line that
// contains a valid (prefix, suffix) bracket pair with a decimal number
// between the two. Matching is plain case-sensitive substring containment;
// whitespace inside prefix and suffix is significant.
//
// When prefix or suffix occurs more than once on a line, candidate pairs are
// tried in ascending (prefixPos, suffixPos) order, prefix outer, suffix
// inner, and the first pair whose interior contains a digit run wins. A line
// yields at most one record.
func (e *Extractor) Extract(content, prefix, suffix, file string) []domain.Record {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	var records []domain.Record

	for i, line := range lines {
		trace := LineTrace{
			LineNum:        i + 1,
			Line:           line,
			ContainsPrefix: strings.Contains(line, prefix),
			ContainsSuffix: strings.Contains(line, suffix),
		}

		if trace.ContainsPrefix && trace.ContainsSuffix {
			trace.PrefixPositions = allPositions(line, prefix)
			trace.SuffixPositions = allPositions(line, suffix)

			if value, interior, ok := e.firstMatch(line, prefix, trace.PrefixPositions, trace.SuffixPositions, file, i+1); ok {
				trace.Matched = true
				trace.Value = value
				trace.Interior = interior
				records = append(records, domain.Record{
					File:    file,
					LineNum: i + 1,
					Value:   value,
					Line:    strings.TrimSpace(line),
				})
			}
		}

		if e.observer != nil {
			e.observer(trace)
		}
	}

	if len(records) == 0 {
		e.logger.Debug("no matches in file",
			slog.String("file", file),
			slog.Int("lines", len(lines)))
	}

	return records
}

// firstMatch walks candidate (prefix, suffix) position pairs in ascending
// order and returns the value of the first pair whose interior holds a digit
// run. A pair is a candidate only when the prefix occurrence ends at or
// before the suffix occurrence starts.
func (e *Extractor) firstMatch(line, prefix string, prefixPositions, suffixPositions []int, file string, lineNum int) (int64, string, bool) {
	for _, prefixPos := range prefixPositions {
		prefixEnd := prefixPos + len(prefix)

		for _, suffixPos := range suffixPositions {
			if prefixEnd > suffixPos {
				continue
			}

			interior := strings.TrimSpace(line[prefixEnd:suffixPos])
			digits, ok := firstDigitRun(interior)
			if !ok {
				continue
			}

			value, err := strconv.ParseInt(digits, 10, 64)
			if err != nil {
				e.logger.Warn("cannot parse duration value",
					slog.String("file", file),
					slog.Int("line_num", lineNum),
					slog.String("digits", digits),
					slog.String("error", err.Error()))
				continue
			}
			return value, interior, true
		}
	}
	return 0, "", false
}

// allPositions returns every starting index of sub within s in ascending
// order, including overlapping occurrences: the search resumes one byte
// after each hit, not past it.
func allPositions(s, sub string) []int {
	if sub == "" {
		return nil
	}
	var positions []int
	start := 0
	for {
		idx := strings.Index(s[start:], sub)
		if idx < 0 {
			break
		}
		positions = append(positions, start+idx)
		start += idx + 1
	}
	return positions
}

// firstDigitRun returns the first maximal run of decimal digits in s.
func firstDigitRun(s string) (string, bool) {
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return s[start:i], true
		}
	}
	if start >= 0 {
		return s[start:], true
	}
	return "", false
}
