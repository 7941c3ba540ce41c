package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lichi50062/logstats/pkg/contracts/domain"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name   string
		values []int64
		want   domain.Statistics
	}{
		{
			name:   "empty set returns zero statistics",
			values: nil,
			want:   domain.Statistics{},
		},
		{
			name:   "single value",
			values: []int64{42},
			want: domain.Statistics{
				Count: 1, Min: 42, Max: 42,
				Avg: 42, Median: 42, P90: 42, P95: 42, P99: 42,
			},
		},
		{
			name:   "two values interpolate the median",
			values: []int64{1, 2},
			want: domain.Statistics{
				Count: 2, Min: 1, Max: 2,
				Avg: 1.5, Median: 1.5, P90: 1.9, P95: 1.95, P99: 1.99,
			},
		},
		{
			name:   "one through ten",
			values: []int64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5},
			want: domain.Statistics{
				Count: 10, Min: 1, Max: 10,
				Avg: 5.5, Median: 5.5, P90: 9.1, P95: 9.55, P99: 9.91,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.values)
			assert.Equal(t, tt.want.Count, got.Count)
			assert.Equal(t, tt.want.Min, got.Min)
			assert.Equal(t, tt.want.Max, got.Max)
			assert.InDelta(t, tt.want.Avg, got.Avg, 1e-9)
			assert.InDelta(t, tt.want.Median, got.Median, 1e-9)
			assert.InDelta(t, tt.want.P90, got.P90, 1e-9)
			assert.InDelta(t, tt.want.P95, got.P95, 1e-9)
			assert.InDelta(t, tt.want.P99, got.P99, 1e-9)
		})
	}
}

func TestComputeOrderIndependent(t *testing.T) {
	a := Compute([]int64{3, 1, 2, 9, 4})
	b := Compute([]int64{9, 4, 3, 2, 1})
	assert.Equal(t, a, b)
}

func TestComputeMinMedianMaxOrdering(t *testing.T) {
	sets := [][]int64{
		{5},
		{1, 1, 1},
		{100, 2, 57, 23, 88, 4},
		{7, 7, 8, 9, 1000},
	}
	for _, values := range sets {
		s := Compute(values)
		assert.LessOrEqual(t, float64(s.Min), s.Median)
		assert.LessOrEqual(t, s.Median, float64(s.Max))
	}
}

func TestOverall(t *testing.T) {
	records := []domain.Record{
		{File: "a.log", LineNum: 1, Value: 10},
		{File: "b.log", LineNum: 4, Value: 30},
		{File: "a.log", LineNum: 9, Value: 20},
	}

	s := Overall(records)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, int64(10), s.Min)
	assert.Equal(t, int64(30), s.Max)
	assert.InDelta(t, 20.0, s.Avg, 1e-9)
	assert.InDelta(t, 20.0, s.Median, 1e-9)
}

func TestPerFile(t *testing.T) {
	records := []domain.Record{
		{File: "a.log", Value: 10},
		{File: "b.log", Value: 100},
		{File: "a.log", Value: 30},
		{File: "b.log", Value: 200},
		{File: "a.log", Value: 20},
	}

	perFile := PerFile(records)
	require.Len(t, perFile, 2)

	a := perFile["a.log"]
	assert.Equal(t, 3, a.Count)
	assert.Equal(t, int64(10), a.Min)
	assert.Equal(t, int64(30), a.Max)

	b := perFile["b.log"]
	assert.Equal(t, 2, b.Count)
	assert.InDelta(t, 150.0, b.Avg, 1e-9)
}

func TestPerFileCountsMatchOverall(t *testing.T) {
	records := []domain.Record{
		{File: "a.log", Value: 1},
		{File: "b.log", Value: 2},
		{File: "c.log", Value: 3},
		{File: "a.log", Value: 4},
		{File: "c.log", Value: 5},
		{File: "c.log", Value: 6},
	}

	overall := Overall(records)
	perFile := PerFile(records)

	total := 0
	for _, s := range perFile {
		total += s.Count
	}
	assert.Equal(t, overall.Count, total)
}

func TestPerFileEmpty(t *testing.T) {
	perFile := PerFile(nil)
	assert.Empty(t, perFile)
}
