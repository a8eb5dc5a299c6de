package cli

// ExitInvalid is returned when a ledger fails to load or validate, or when a
// command could not do what was asked of it.
const ExitInvalid = 1

// CommandError signals that a command failed after reporting the failure
// itself. The reason is a short summary for callers that did not see the
// command's output.
type CommandError struct {
	exitCode int
	reason   string
}

// NewCommandError creates a CommandError with the given exit code.
func NewCommandError(exitCode int) *CommandError {
	return &CommandError{exitCode: exitCode}
}

// failed returns a CommandError exiting with ExitInvalid for reason.
func failed(reason string) *CommandError {
	return &CommandError{exitCode: ExitInvalid, reason: reason}
}

func (e *CommandError) Error() string {
	if e.reason == "" {
		return "command failed"
	}
	return e.reason
}

// ExitCode returns the exit code the process should end with.
func (e *CommandError) ExitCode() int {
	return e.exitCode
}

// CommandResult is the outcome of running a command line, turned into a
// process exit by main.
type CommandResult struct {
	ExitCode int
	Err      error
}

// Success is a CommandResult exiting with zero.
func Success() CommandResult {
	return CommandResult{}
}

// Failure is a CommandResult for err. A *CommandError decides its own exit
// code; any other error exits with ExitInvalid.
func Failure(err error) CommandResult {
	if cmdErr, ok := err.(*CommandError); ok {
		return CommandResult{ExitCode: cmdErr.exitCode, Err: err}
	}
	return CommandResult{ExitCode: ExitInvalid, Err: err}
}
