package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeDataLoss           Code = "DATA_LOSS"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Fatal reports whether an error with this code must abort an import run.
// Every code except OK and NotFound is fatal; a missing optional field or
// snapshot is degraded around rather than escalated.
func (c Code) Fatal() bool {
	switch c {
	case CodeOK, CodeNotFound:
		return false
	default:
		return true
	}
}

// ExitCode returns the process exit code for the code
func (c Code) ExitCode() int {
	switch c {
	case CodeOK:
		return 0
	case CodeInvalidArgument:
		return 2
	default:
		return 1
	}
}
