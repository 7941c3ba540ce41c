// Package scanner orchestrates an analysis run end to end: request
// validation, file discovery, per-file extraction, and statistics
// aggregation. Each run gets a UUID run ID attached to its log records.
//
// File extraction is independent per file; the scanner optionally fans it
// out over a bounded worker pool and merges per-file record slices back in
// enumeration order, which keeps the flat record sequence deterministic.
package scanner
