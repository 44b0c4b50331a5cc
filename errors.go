package console

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrNoSession is returned when a context carries no session.
var ErrNoSession = errors.New("no session in context")

// ErrNoToken is returned when durable storage holds no credential.
var ErrNoToken = errors.New("no stored token")

// ErrProfileUnavailable marks the authenticated-but-profile-less state.
var ErrProfileUnavailable = errors.New("profile unavailable")

const (
	textCodeNetworkUnreachable = "NETWORK_UNREACHABLE"
	textCodeAuthRejected       = "AUTH_REJECTED"
	textCodeForbidden          = "FORBIDDEN"
	textCodeNotFound           = "NOT_FOUND"
	textCodeServerError        = "SERVER_ERROR"
	textCodeValidation         = "VALIDATION_REJECTED"
)

// classifyTransportError maps a transport failure to a structured error
// carrying the failure kind, so call sites (and the redirect policy) can
// decide without re-parsing status codes.
func classifyTransportError(status int, message string, cause error) *goerrors.Error {
	switch {
	case cause != nil && status == 0:
		return goerrors.Wrap(cause, goerrors.CategoryOperation, "backend unreachable").
			WithTextCode(textCodeNetworkUnreachable)
	case status == 401:
		return goerrors.New("authentication rejected", goerrors.CategoryAuth).
			WithCode(goerrors.CodeUnauthorized).
			WithTextCode(textCodeAuthRejected).
			WithMetadata(map[string]any{"status": status})
	case status == 403:
		return goerrors.New("authorization denied", goerrors.CategoryAuthz).
			WithCode(goerrors.CodeForbidden).
			WithTextCode(textCodeForbidden).
			WithMetadata(map[string]any{"status": status})
	case status == 404:
		return goerrors.New("resource not found", goerrors.CategoryNotFound).
			WithCode(goerrors.CodeNotFound).
			WithTextCode(textCodeNotFound).
			WithMetadata(map[string]any{"status": status})
	case status >= 500:
		return goerrors.New("backend server error", goerrors.CategoryInternal).
			WithCode(goerrors.CodeInternal).
			WithTextCode(textCodeServerError).
			WithMetadata(map[string]any{"status": status})
	default:
		if message == "" {
			message = fmt.Sprintf("request rejected with status %d", status)
		}
		return goerrors.New(message, goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest).
			WithTextCode(textCodeValidation).
			WithMetadata(map[string]any{"status": status})
	}
}

// ClassifyStatus classifies an HTTP response status the same way the
// gateway does, for callers bringing their own transport.
func ClassifyStatus(status int, message string) *goerrors.Error {
	return classifyTransportError(status, message, nil)
}

// IsNetworkError reports a no-response transport failure.
func IsNetworkError(err error) bool {
	return hasTextCode(err, textCodeNetworkUnreachable)
}

// IsAuthRejected reports a 401-class failure.
func IsAuthRejected(err error) bool {
	return hasTextCode(err, textCodeAuthRejected)
}

// IsForbidden reports a 403-class failure.
func IsForbidden(err error) bool {
	return hasTextCode(err, textCodeForbidden)
}

// IsNotFoundError reports a 404-class failure.
func IsNotFoundError(err error) bool {
	return hasTextCode(err, textCodeNotFound)
}

// IsServerError reports a 5xx-class failure.
func IsServerError(err error) bool {
	return hasTextCode(err, textCodeServerError)
}

// IsValidationRejected reports a business-rule 4xx whose message should
// surface at the call site instead of triggering a redirect.
func IsValidationRejected(err error) bool {
	return hasTextCode(err, textCodeValidation)
}

// ValidationMessage extracts the backend message from a validation
// rejection, or "" when the error is not one.
func ValidationMessage(err error) string {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return ""
	}
	if richErr.TextCode != textCodeValidation {
		return ""
	}
	return richErr.Message
}

func hasTextCode(err error, code string) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == code
}

// responseMessage digs the human message out of an error body. The
// backend is not schema-validated client side, so be permissive about
// shapes: {"message": ...} and {"error": ...} both occur.
func responseMessage(body map[string]any) string {
	if body == nil {
		return ""
	}
	for _, key := range []string{"message", "error"} {
		if v, ok := body[key]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return ""
}
