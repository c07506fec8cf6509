package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_String(t *testing.T) {
	tests := map[string]struct {
		category ErrorCategory
		want     string
	}{
		"argument":      {category: Argument, want: "Argument Error"},
		"configuration": {category: Configuration, want: "Configuration Error"},
		"filesystem":    {category: Filesystem, want: "Filesystem Error"},
		"runtime":       {category: Runtime, want: "Runtime Error"},
		"unknown":       {category: ErrorCategory(42), want: "Error"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()
	cause := stderrors.New("disk full")

	assert.Nil(t, Wrap(nil, Runtime))
	assert.Nil(t, WrapWithMessage(nil, Runtime, "x"))

	wrapped := WrapWithMessage(cause, Filesystem, "writing metadata", "free some space")
	assert.Equal(t, "writing metadata: disk full", wrapped.Error())
	assert.Equal(t, Filesystem, wrapped.Category)
	assert.ErrorIs(t, wrapped, cause)
}

func TestAsCLIError(t *testing.T) {
	t.Parallel()
	cliErr := NewConfigError("bad config")

	assert.Same(t, cliErr, AsCLIError(cliErr))
	assert.Same(t, cliErr, AsCLIError(fmt.Errorf("loading: %w", cliErr)))
	assert.Nil(t, AsCLIError(stderrors.New("plain")))
	assert.Nil(t, AsCLIError(nil))
}

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()
	err := InvalidFormat("yaml")

	out := FormatErrorPlain(err)
	assert.Contains(t, out, "Error [Argument Error]: invalid format: yaml\n")
	assert.Contains(t, out, "Usage: --format md|toml|native\n")
	assert.Contains(t, out, "To fix this:\n")
	assert.Contains(t, out, "  • toml converts every command to the TOML prompt format\n")
	assert.Empty(t, FormatErrorPlain(nil))
}

func TestMessages(t *testing.T) {
	tests := map[string]struct {
		err          *CLIError
		wantCategory ErrorCategory
		wantMessage  string
	}{
		"invalid assistant": {
			err:          InvalidAssistant(stderrors.New(`invalid assistant "vim"`), []string{"claude", "gemini"}),
			wantCategory: Argument,
			wantMessage:  `unsupported assistant: invalid assistant "vim"`,
		},
		"invalid plan id": {
			err:          InvalidPlanID("abc"),
			wantCategory: Argument,
			wantMessage:  "invalid plan id: abc",
		},
		"plan not found": {
			err:          PlanNotFound(7),
			wantCategory: Argument,
			wantMessage:  "plan 7 not found in plans/ or archive/",
		},
		"path validation": {
			err:          PathValidationFailed([]string{"Path validation failed: a", "b"}),
			wantCategory: Filesystem,
			wantMessage:  "Path validation failed: a; b",
		},
		"config": {
			err:          ConfigLoadFailed(stderrors.New("bad")),
			wantCategory: Configuration,
			wantMessage:  "failed to load configuration: bad",
		},
		"install incomplete": {
			err:          InstallIncomplete(2),
			wantCategory: Runtime,
			wantMessage:  "2 command file(s) failed to install",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.wantCategory, tt.err.Category)
			assert.Equal(t, tt.wantMessage, tt.err.Message)
			assert.NotEmpty(t, tt.err.Remediation)
		})
	}
}

func TestFprintError(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	FprintError(&buf, NewRuntimeError("boom"))
	assert.Contains(t, buf.String(), "boom")

	buf.Reset()
	FprintError(&buf, nil)
	assert.Zero(t, buf.Len())
}
