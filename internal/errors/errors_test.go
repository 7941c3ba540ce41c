package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanErrorMessage(t *testing.T) {
	assert.Equal(t, "bad input", New(CodeInvalidInput, "bad input").Error())

	wrapped := Wrap(CodeFileRead, "cannot read", fs.ErrPermission)
	assert.Equal(t, "cannot read: permission denied", wrapped.Error())
}

func TestUnwrap(t *testing.T) {
	cause := fs.ErrNotExist
	err := FileRead("/tmp/x.log", cause)
	assert.True(t, stderrors.Is(err, fs.ErrNotExist))
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{name: "invalid input", err: InvalidInput("missing dir"), want: CodeInvalidInput},
		{name: "file read", err: FileRead("a.log", fs.ErrNotExist), want: CodeFileRead},
		{name: "export", err: ExportFailed(fs.ErrPermission), want: CodeExportFailed},
		{name: "internal", err: Internal("boom", nil), want: CodeInternal},
		{name: "wrapped in fmt.Errorf", err: fmt.Errorf("outer: %w", InvalidInput("x")), want: CodeInvalidInput},
		{name: "plain error", err: stderrors.New("plain"), want: CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestIsCode(t *testing.T) {
	err := InvalidInput("empty prefix")
	assert.True(t, IsCode(err, CodeInvalidInput))
	assert.False(t, IsCode(err, CodeFileRead))
}
