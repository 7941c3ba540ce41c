// Package validation checks scan requests before any file processing
// starts. Violations are reported as INVALID_INPUT errors and abort the
// run with a failing exit status.
package validation

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"

	scanerrors "github.com/lichi50062/logstats/internal/errors"
	"github.com/lichi50062/logstats/pkg/contracts/domain"
)

// RequestValidator validates scan requests
type RequestValidator struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// New creates a request validator
func New(logger *slog.Logger) *RequestValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &RequestValidator{
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ValidateRequest checks the struct constraints of req and that the target
// directory exists and is a directory. Prefix and suffix only need to be
// non-empty; interior whitespace is part of the search string and is left
// untouched.
func (v *RequestValidator) ValidateRequest(req *domain.ScanRequest) error {
	if err := v.validate.Struct(req); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			v.logger.Error("request validation failed",
				slog.String("field", fe.Field()),
				slog.String("constraint", fe.Tag()))
			return scanerrors.InvalidInput(fmt.Sprintf("field %s violates constraint %q", fe.Field(), fe.Tag()))
		}
		return scanerrors.InvalidInput(err.Error())
	}

	info, err := os.Stat(req.Dir)
	if os.IsNotExist(err) {
		v.logger.Error("log directory does not exist", slog.String("dir", req.Dir))
		return scanerrors.InvalidInput(fmt.Sprintf("log directory %s does not exist", req.Dir))
	}
	if err != nil {
		v.logger.Error("failed to stat log directory",
			slog.String("dir", req.Dir),
			slog.String("error", err.Error()))
		return scanerrors.InvalidInput(fmt.Sprintf("cannot access log directory %s: %v", req.Dir, err))
	}
	if !info.IsDir() {
		v.logger.Error("log path is not a directory", slog.String("path", req.Dir))
		return scanerrors.InvalidInput(fmt.Sprintf("%s is not a directory", req.Dir))
	}

	return nil
}
