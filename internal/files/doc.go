// Package files provides log file discovery for the duration analyzer.
//
// Discovery lists the regular files of a single target directory without
// recursing, filtering out an exclusion set of extensions (compared
// case-insensitively) and optionally restricting results to a glob
// pattern. ReadFileText reads file content with lossy UTF-8 decoding so
// the extractor never observes encoding errors.
package files
