package console

import (
	"context"
	"fmt"

	"github.com/goliatone/go-router"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// TokenStore is the durable half of the dual credential storage. The
// session cookie is the other half; both are written together by
// SessionManager.LoginWithToken.
type TokenStore interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// ProfileFetcher resolves the "who am I" endpoint for a given token.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, token string) (*Profile, error)
}

// StatusSource provides a fresh read of the seller's request status,
// bypassing whatever the session manager has cached.
type StatusSource interface {
	RequestStatus(ctx context.Context) (*SellerRequest, error)
}

// Navigator abstracts the full-page redirect surface of a request
// context. router.Context satisfies it.
type Navigator interface {
	Redirect(path string, status ...int) error
}

// SessionProvider exposes the current session to page handlers.
type SessionProvider interface {
	Session() Session
	Loading() bool
	State() SessionState
}

// Config holds console options
type Config interface {
	GetAPIBaseURL() string
	GetSessionCookieName() string
	GetCookieDuration() int
	GetRequestTimeout() int
	GetLoginRoute() string
	GetOnboardingRoute() string
	GetForbiddenRoute() string
	GetNotFoundRoute() string
	GetErrorRoute() string
	GetRejectedRouteKey() string
	GetRejectedRouteDefault() string
	GetStatusCacheTTL() int
	GetRetainTokenOnProfileError() bool
	GetPhoneRegion() string
}

// ConsoleMiddleware is what page registration needs from the guard layer.
type ConsoleMiddleware interface {
	RequireStatus(expected SellerStatus) router.MiddlewareFunc
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] CONSOLE "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] CONSOLE "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] CONSOLE "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] CONSOLE "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
