// Package stats aggregates extracted duration values into summary
// statistics, both across a whole run and per source file.
//
// Percentile computation is pinned to linear interpolation on the
// zero-indexed rank p/100*(n-1), numpy's default convention.
package stats
