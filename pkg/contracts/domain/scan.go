package domain

import "time"

// Record represents one extracted duration observation: a numeric value
// found between the configured prefix and suffix on a single log line.
type Record struct {
	File    string `json:"file"`
	LineNum int    `json:"line_num"`
	Value   int64  `json:"value"`
	Line    string `json:"line"`
}

// Statistics represents summary statistics over a set of extracted values.
// All fields are zero when Count is zero; this is the defined degenerate
// result for an empty value set, not an error.
type Statistics struct {
	Count  int     `json:"count"`
	Min    int64   `json:"min"`
	Max    int64   `json:"max"`
	Avg    float64 `json:"avg"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
	P95    float64 `json:"p95"`
	P99    float64 `json:"p99"`
}

// ScanRequest represents the parameters of one analysis run.
type ScanRequest struct {
	Dir     string `json:"dir" validate:"required"`
	Prefix  string `json:"prefix" validate:"required"`
	Suffix  string `json:"suffix" validate:"required"`
	Pattern string `json:"pattern,omitempty"`
	// ExcludedExtensions overrides the configured exclusion set when non-nil.
	// Extensions are compared case-insensitively and include the leading dot.
	ExcludedExtensions []string `json:"excluded_extensions,omitempty"`
	Workers            int      `json:"workers" validate:"min=0"`
}

// ScanResult represents the complete outcome of one analysis run.
type ScanResult struct {
	Records     []Record              `json:"records"`
	Overall     Statistics            `json:"overall"`
	PerFile     map[string]Statistics `json:"per_file"`
	FilesFound  int                   `json:"files_found"`
	FilesFailed int                   `json:"files_failed"`
	Elapsed     time.Duration         `json:"elapsed"`
}

// HasRecords reports whether the run extracted at least one value.
func (r *ScanResult) HasRecords() bool {
	return len(r.Records) > 0
}
