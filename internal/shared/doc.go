// Package shared provides common utilities and test helpers used across
// the analyzer codebase. The testutil subpackage holds a capturing slog
// handler for asserting on log output in tests.
package shared
