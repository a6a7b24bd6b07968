package harvest

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// Codes other than EINTERNAL map one-to-one onto the stage at which a URL
// was rejected, so a failure can be reported by code alone.
const (
	EINVALID  = "invalid"      // malformed URL or unusable input
	EDEAD     = "dead"         // probe could not reach the page or got non-2xx
	ENOTFOUND = "not_found"    // probe body carries a "page not found" marker
	ENETWORK  = "network"      // transient fetch failure, retryable
	EFETCH    = "fetch_failed" // permanent fetch failure, not retryable
	EPARSE    = "parse"        // document could not be interpreted
	EINTERNAL = "internal"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("harvest error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return the underlying error text.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsRetryable reports whether err is a transient fetch failure that may
// succeed on another attempt.
func IsRetryable(err error) bool {
	return ErrorCode(err) == ENETWORK
}
