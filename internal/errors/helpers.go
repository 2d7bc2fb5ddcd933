package errors

import "errors"

// As is errors.As for *Error targets
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// GetMessage returns the user-facing message of an *Error, or err.Error()
// for anything else.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func hasCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// IsInvalidArgument reports whether err carries CodeInvalidArgument
func IsInvalidArgument(err error) bool { return hasCode(err, CodeInvalidArgument) }

// IsNotFound reports whether err carries CodeNotFound
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsAlreadyExists reports whether err carries CodeAlreadyExists
func IsAlreadyExists(err error) bool { return hasCode(err, CodeAlreadyExists) }

// IsFailedPrecondition reports whether err carries CodeFailedPrecondition
func IsFailedPrecondition(err error) bool { return hasCode(err, CodeFailedPrecondition) }

// IsInternal reports whether err carries CodeInternal
func IsInternal(err error) bool { return hasCode(err, CodeInternal) }

// IsUnavailable reports whether err carries CodeUnavailable
func IsUnavailable(err error) bool { return hasCode(err, CodeUnavailable) }

// IsDataLoss reports whether err carries CodeDataLoss
func IsDataLoss(err error) bool { return hasCode(err, CodeDataLoss) }
