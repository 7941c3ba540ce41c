// Package extract implements the prefix/suffix duration extractor.
//
// The extractor scans raw log content line by line and pulls out the first
// decimal number found between a user-supplied prefix substring and suffix
// substring. Matching is literal substring containment rather than regular
// expressions, so prefixes and suffixes containing regex metacharacters
// need no escaping. Repeated occurrences of either delimiter on one line
// are resolved by trying candidate (prefix, suffix) position pairs in
// ascending order and taking the first pair with a numeric interior.
//
// An optional LineObserver hook exposes the per-line match decisions for
// diagnostics without affecting extraction.
package extract
