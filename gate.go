package console

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/goliatone/go-router"
)

// GateDecision is the result of a page-level status check.
type GateDecision struct {
	Allow      bool
	RedirectTo string
	Status     SellerStatus
}

// StatusGate performs the fine-grained authorization check dashboard
// class pages need: a fresh read of the seller's request status, not
// the possibly-stale copy in the session manager. A short TTL cache
// keeps intra-session navigations from paying a round trip each time.
type StatusGate struct {
	source          StatusSource
	onboardingRoute string
	ttl             time.Duration
	now             func() time.Time
	logger          Logger
	// ErrorHandler handles non-authorization failures of the status
	// call itself; pages surface these as an in-page error with a
	// retry affordance rather than a redirect.
	ErrorHandler router.ErrorHandler

	mu        sync.Mutex
	cached    *SellerRequest
	fetchedAt time.Time
}

const defaultStatusCacheTTL = 30 * time.Second

func NewStatusGate(source StatusSource, cfg Config) *StatusGate {
	onboardingRoute := cfg.GetOnboardingRoute()
	if onboardingRoute == "" {
		onboardingRoute = "/seller/onboarding"
	}

	ttl := defaultStatusCacheTTL
	if cfg.GetStatusCacheTTL() > 0 {
		ttl = time.Duration(cfg.GetStatusCacheTTL()) * time.Second
	}

	g := &StatusGate{
		source:          source,
		onboardingRoute: onboardingRoute,
		ttl:             ttl,
		now:             time.Now,
		logger:          defLogger{},
	}
	g.ErrorHandler = g.defaultErrorHandler

	return g
}

func (g *StatusGate) WithLogger(logger Logger) *StatusGate {
	if logger != nil {
		g.logger = logger
	}
	return g
}

// WithClock injects a custom clock (useful for tests).
func (g *StatusGate) WithClock(clock func() time.Time) *StatusGate {
	if clock != nil {
		g.now = clock
	}
	return g
}

// Invalidate drops the cached status, forcing the next check to hit
// the backend. Call after submitting an onboarding request.
func (g *StatusGate) Invalidate() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cached = nil
}

// Check resolves the gate decision for an expected status. A canceled
// context returns its error without deciding anything, so an abandoned
// navigation never triggers a redirect.
func (g *StatusGate) Check(ctx context.Context, expected SellerStatus) (GateDecision, error) {
	request, err := g.currentStatus(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return GateDecision{}, ctx.Err()
		}
		if IsAuthRejected(err) || IsForbidden(err) {
			// Safe default: an unauthorized status probe sends the
			// seller back through onboarding.
			return GateDecision{RedirectTo: g.onboardingRoute}, nil
		}
		return GateDecision{}, err
	}

	if ctx.Err() != nil {
		return GateDecision{}, ctx.Err()
	}

	if request.Status != expected {
		return GateDecision{RedirectTo: g.onboardingRoute, Status: request.Status}, nil
	}

	return GateDecision{Allow: true, Status: request.Status}, nil
}

// RequireStatus guards a route on a fresh seller status. Pages that
// used to copy this check now share one guard and one cache.
func (g *StatusGate) RequireStatus(expected SellerStatus) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			decision, err := g.Check(ctx.Context(), expected)
			if err != nil {
				if ctx.Context().Err() != nil {
					// Navigation abandoned mid-check; do nothing.
					return nil
				}
				return g.ErrorHandler(ctx, err)
			}

			if !decision.Allow {
				g.logger.Info("status gate redirect",
					"expected", expected,
					"actual", decision.Status,
					"path", ctx.OriginalURL(),
				)
				return ctx.Redirect(decision.RedirectTo, http.StatusFound)
			}

			return hf(ctx)
		}
	}
}

func (g *StatusGate) currentStatus(ctx context.Context) (*SellerRequest, error) {
	g.mu.Lock()
	if g.cached != nil && g.now().Sub(g.fetchedAt) < g.ttl {
		cached := *g.cached
		g.mu.Unlock()
		return &cached, nil
	}
	g.mu.Unlock()

	request, err := g.source.RequestStatus(ctx)
	if err != nil {
		return nil, err
	}

	if normalized, ok := ParseSellerStatus(request.Status); ok {
		request.Status = normalized
	}

	g.mu.Lock()
	g.cached = request
	g.fetchedAt = g.now()
	g.mu.Unlock()

	return request, nil
}

func (g *StatusGate) defaultErrorHandler(c router.Context, err error) error {
	return c.Render("errors/status_check", router.ViewContext{
		"message": err.Error(),
		"retry":   c.OriginalURL(),
	})
}
