package console

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// RedirectPolicy owns the failure-kind to page mapping. Validation
// rejections never redirect; they surface at the call site.
type RedirectPolicy struct {
	LoginRoute     string
	ForbiddenRoute string
	NotFoundRoute  string
	ErrorRoute     string
}

func NewRedirectPolicy(cfg Config) *RedirectPolicy {
	p := &RedirectPolicy{
		LoginRoute:     cfg.GetLoginRoute(),
		ForbiddenRoute: cfg.GetForbiddenRoute(),
		NotFoundRoute:  cfg.GetNotFoundRoute(),
		ErrorRoute:     cfg.GetErrorRoute(),
	}

	if p.LoginRoute == "" {
		p.LoginRoute = "/auth/login"
	}
	if p.ForbiddenRoute == "" {
		p.ForbiddenRoute = "/403"
	}
	if p.NotFoundRoute == "" {
		p.NotFoundRoute = "/404"
	}
	if p.ErrorRoute == "" {
		p.ErrorRoute = "/error"
	}

	return p
}

// Target resolves the redirect destination for a classified failure.
// The second return is false when the failure should stay local.
func (p *RedirectPolicy) Target(err error) (string, bool) {
	switch {
	case err == nil:
		return "", false
	case IsAuthRejected(err):
		return p.LoginRoute, true
	case IsForbidden(err):
		return p.ForbiddenRoute, true
	case IsNotFoundError(err):
		return p.NotFoundRoute, true
	case IsNetworkError(err), IsServerError(err):
		return p.ErrorRoute, true
	default:
		return "", false
	}
}

// RedirectOnError is the top-level boundary for handlers that let
// classified gateway errors bubble instead of binding a Navigator per
// call. It decides once, at the edge of the handler chain.
func RedirectOnError(policy *RedirectPolicy, logger Logger) router.MiddlewareFunc {
	if logger == nil {
		logger = defLogger{}
	}

	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			err := hf(ctx)
			if err == nil {
				return nil
			}

			target, ok := policy.Target(err)
			if !ok {
				return err
			}

			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				logger.Info("boundary redirect",
					"target", target,
					"text_code", richErr.TextCode,
					"path", ctx.OriginalURL(),
				)
			}

			return ctx.Redirect(target, http.StatusFound)
		}
	}
}
