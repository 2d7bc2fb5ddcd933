package errors

// Code classifies an error
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeDataLoss           Code = "DATA_LOSS"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Exit codes follow sysexits.h so scripts driving the CLI can branch on them.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 64
	ExitDataErr     = 65
	ExitNoInput     = 66
	ExitUnavailable = 69
	ExitSoftware    = 70
	ExitCantCreate  = 73
	ExitConfig      = 78
)

// ExitCode returns the process exit status for the code
func (c Code) ExitCode() int {
	switch c {
	case CodeOK:
		return ExitOK
	case CodeInvalidArgument:
		return ExitUsage
	case CodeNotFound:
		return ExitNoInput
	case CodeAlreadyExists:
		return ExitCantCreate
	case CodeDataLoss:
		return ExitDataErr
	case CodeUnavailable:
		return ExitUnavailable
	case CodeFailedPrecondition:
		return ExitConfig
	case CodeInternal:
		return ExitSoftware
	default:
		return ExitFailure
	}
}
