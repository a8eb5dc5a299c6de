package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestCommandError(t *testing.T) {
	t.Run("ExitCode", func(t *testing.T) {
		assert.Equal(t, 42, NewCommandError(42).ExitCode())
		assert.Equal(t, ExitInvalid, failed("ledger has errors").ExitCode())
	})

	t.Run("Reason", func(t *testing.T) {
		assert.EqualError(t, NewCommandError(1), "command failed")
		assert.EqualError(t, failed("file left unchanged"), "file left unchanged")
	})

	t.Run("Wrapped", func(t *testing.T) {
		err := fmt.Errorf("format: %w", failed("parse error"))
		var cmdErr *CommandError
		assert.True(t, errors.As(err, &cmdErr))
		assert.Equal(t, ExitInvalid, cmdErr.ExitCode())
	})
}

func TestCommandResult(t *testing.T) {
	tests := []struct {
		name     string
		result   CommandResult
		exitCode int
		err      bool
	}{
		{"Success", Success(), 0, false},
		{"CommandError", Failure(NewCommandError(3)), 3, true},
		{"PlainError", Failure(errors.New("open ledger.txt: no such file or directory")), ExitInvalid, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.exitCode, tt.result.ExitCode)
			assert.Equal(t, tt.err, tt.result.Err != nil)
		})
	}
}
