package extract

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lichi50062/logstats/internal/shared/testutil"
	"github.com/lichi50062/logstats/pkg/contracts/domain"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		content string
		prefix  string
		suffix  string
		want    []domain.Record
	}{
		{
			name:    "simple bracket pair",
			content: "start:123:end",
			prefix:  "start:",
			suffix:  ":end",
			want: []domain.Record{
				{File: "run.log", LineNum: 1, Value: 123, Line: "start:123:end"},
			},
		},
		{
			name:    "empty interior yields nothing",
			content: "start:end",
			prefix:  "start:",
			suffix:  ":end",
			want:    nil,
		},
		{
			name:    "first ascending pair wins",
			content: "A 5 B A 9 B",
			prefix:  "A",
			suffix:  "B",
			want: []domain.Record{
				{File: "run.log", LineNum: 1, Value: 5, Line: "A 5 B A 9 B"},
			},
		},
		{
			name:    "at most one record per line",
			content: "took 10 ms and took 20 ms",
			prefix:  "took",
			suffix:  "ms",
			want: []domain.Record{
				{File: "run.log", LineNum: 1, Value: 10, Line: "took 10 ms and took 20 ms"},
			},
		},
		{
			name:    "prefix only is skipped",
			content: "start:123\nstart:77:end",
			prefix:  "start:",
			suffix:  ":end",
			want: []domain.Record{
				{File: "run.log", LineNum: 2, Value: 77, Line: "start:77:end"},
			},
		},
		{
			name:    "suffix before prefix is skipped",
			content: ":end 42 start:",
			prefix:  "start:",
			suffix:  ":end",
			want:    nil,
		},
		{
			name:    "abutting prefix and suffix with no gap",
			content: "elapsed=9;done",
			prefix:  "elapsed=",
			suffix:  ";done",
			want: []domain.Record{
				{File: "run.log", LineNum: 1, Value: 9, Line: "elapsed=9;done"},
			},
		},
		{
			name:    "non numeric interior falls through to later pair",
			content: "A none B 33 B",
			prefix:  "A",
			suffix:  "B",
			want: []domain.Record{
				{File: "run.log", LineNum: 1, Value: 33, Line: "A none B 33 B"},
			},
		},
		{
			name:    "first maximal digit run in interior",
			content: "time= 120ms of 999 :sec",
			prefix:  "time=",
			suffix:  ":sec",
			want: []domain.Record{
				{File: "run.log", LineNum: 1, Value: 120, Line: "time= 120ms of 999 :sec"},
			},
		},
		{
			name:    "whitespace in delimiters is significant",
			content: "took  5 ms",
			prefix:  "took  ",
			suffix:  " ms",
			want: []domain.Record{
				{File: "run.log", LineNum: 1, Value: 5, Line: "took  5 ms"},
			},
		},
		{
			name:    "case sensitive matching",
			content: "Start:5:end",
			prefix:  "start:",
			suffix:  ":end",
			want:    nil,
		},
		{
			name:    "multiple lines keep their line numbers",
			content: "noise\ntook 7 ms\nnoise\ntook 11 ms",
			prefix:  "took",
			suffix:  "ms",
			want: []domain.Record{
				{File: "run.log", LineNum: 2, Value: 7, Line: "took 7 ms"},
				{File: "run.log", LineNum: 4, Value: 11, Line: "took 11 ms"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(slog.Default())
			got := e.Extract(tt.content, tt.prefix, tt.suffix, "run.log")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractIdempotent(t *testing.T) {
	content := "took 10 ms\nnope\ntook 30 ms\ntook abc ms\ntook 20 ms"
	e := New(slog.Default())

	first := e.Extract(content, "took", "ms", "a.log")
	second := e.Extract(content, "took", "ms", "a.log")

	require.Len(t, first, 3)
	assert.Equal(t, first, second)
}

func TestExtractOverflowFallsThrough(t *testing.T) {
	// A digit run too large for int64 is treated like a non-numeric
	// interior: the scan logs a warning and moves to the next pair.
	logger, captured := testutil.NewLogger(t)
	content := "A 99999999999999999999999999 B A 12 B"

	records := New(logger).Extract(content, "A", "B", "a.log")

	require.Len(t, records, 1)
	assert.Equal(t, int64(12), records[0].Value)
	assert.True(t, captured.Contains(slog.LevelWarn, "cannot parse duration value"))
}

func TestExtractObserver(t *testing.T) {
	content := "took 10 ms\nno delimiters here\ntook x ms"
	var traces []LineTrace

	e := New(slog.Default()).WithObserver(func(tr LineTrace) {
		traces = append(traces, tr)
	})
	records := e.Extract(content, "took", "ms", "a.log")

	require.Len(t, records, 1)
	require.Len(t, traces, 3, "observer must see every line, matching or not")

	assert.True(t, traces[0].Matched)
	assert.Equal(t, int64(10), traces[0].Value)
	assert.Equal(t, "10", traces[0].Interior)

	assert.False(t, traces[1].ContainsPrefix)
	assert.False(t, traces[1].Matched)

	assert.True(t, traces[2].ContainsPrefix)
	assert.True(t, traces[2].ContainsSuffix)
	assert.False(t, traces[2].Matched)
}

func TestAllPositions(t *testing.T) {
	tests := []struct {
		name string
		s    string
		sub  string
		want []int
	}{
		{name: "overlapping occurrences", s: "AAA", sub: "AA", want: []int{0, 1}},
		{name: "disjoint occurrences", s: "ab ab ab", sub: "ab", want: []int{0, 3, 6}},
		{name: "no occurrence", s: "xyz", sub: "ab", want: nil},
		{name: "empty needle", s: "xyz", sub: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, allPositions(tt.s, tt.sub))
		})
	}
}

func TestFirstDigitRun(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{name: "plain number", in: "123", want: "123", ok: true},
		{name: "embedded number", in: "took 42 ms", want: "42", ok: true},
		{name: "first run wins", in: "1a22b333", want: "1", ok: true},
		{name: "trailing run", in: "abc9", want: "9", ok: true},
		{name: "no digits", in: "abc", want: "", ok: false},
		{name: "empty", in: "", want: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := firstDigitRun(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
