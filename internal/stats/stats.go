package stats

import (
	"math"
	"sort"

	"github.com/lichi50062/logstats/pkg/contracts/domain"
)

// Overall computes summary statistics across every record. An empty record
// set returns the zero-valued Statistics with Count 0.
func Overall(records []domain.Record) domain.Statistics {
	values := make([]int64, 0, len(records))
	for _, r := range records {
		values = append(values, r.Value)
	}
	return Compute(values)
}

// PerFile partitions records by file and computes statistics for each
// group independently. Files that produced no records are absent from
// the result.
func PerFile(records []domain.Record) map[string]domain.Statistics {
	groups := make(map[string][]int64)
	for _, r := range records {
		groups[r.File] = append(groups[r.File], r.Value)
	}

	result := make(map[string]domain.Statistics, len(groups))
	for file, values := range groups {
		result[file] = Compute(values)
	}
	return result
}

// Compute derives Statistics from a value multiset. Percentiles use linear
// interpolation on the zero-indexed rank p/100*(n-1); the median is the
// 50th percentile under the same convention.
func Compute(values []int64) domain.Statistics {
	if len(values) == 0 {
		return domain.Statistics{}
	}

	sorted := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sorted[i] = float64(v)
		sum += float64(v)
	}
	sort.Float64s(sorted)

	return domain.Statistics{
		Count:  len(values),
		Min:    int64(sorted[0]),
		Max:    int64(sorted[len(sorted)-1]),
		Avg:    sum / float64(len(values)),
		Median: percentile(sorted, 50),
		P90:    percentile(sorted, 90),
		P95:    percentile(sorted, 95),
		P99:    percentile(sorted, 99),
	}
}

// percentile returns the value at percentile p (0-100) of an ascending
// sorted slice, linearly interpolated between the adjacent ranks.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[n-1]
	}

	rank := p / 100 * float64(n-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}

	weight := rank - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
