// Package exporter renders scan results as an Excel workbook with three
// sheets: an overall summary row, a per-file breakdown, and a sorted-value
// distribution sheet with a line chart. The workbook name defaults to a
// timestamp-derived file in the configured output directory.
package exporter
