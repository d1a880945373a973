package errors

import (
	"errors"
	"strings"

	"github.com/dukatech/netstore-backend/pkg/identity"
)

// ErrorInfo pairs an error code with a user-facing message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError folds an arbitrary error into a safe user-facing code and
// message. Sensitive detail stays in the logs; the caller gets enough to act.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	// 1. External identity provider errors
	if errors.Is(err, identity.ErrUnauthorized) {
		return ErrorInfo{Code: AuthTokenInvalid, Message: "Your session is no longer valid"}
	}
	if errors.Is(err, identity.ErrUnavailable) {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "Could not reach the account service. Please try again shortly",
		}
	}

	errStrLower := strings.ToLower(err.Error())

	// 2. Durable storage / network errors
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "i/o timeout") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalStorageError,
			Message: "Storage is temporarily unavailable. Your changes are kept for this session",
		}
	}

	// 3. Fallback
	return ErrorInfo{
		Code:    InternalServerError,
		Message: "Something went wrong. Please try again shortly",
	}
}
