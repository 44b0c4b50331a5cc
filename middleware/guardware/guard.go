// Package guardware is the edge route guard: a coarse, cookie-presence
// gate evaluated before any page handler runs. It never validates the
// credential or consults the backend; freshness checks belong to the
// page-level status gates.
package guardware

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-router"
)

// Outcome is the guard's decision for a navigation.
type Outcome int

const (
	// OutcomeBypass means the path is outside both guarded families.
	OutcomeBypass Outcome = iota
	OutcomeAllow
	OutcomeRedirectLogin
	OutcomeRedirectOnboarding
)

type Config struct {
	// CookieName is the session cookie key. Presence is the only check.
	CookieName string
	// AuthPrefixes are the login/signup path family.
	AuthPrefixes []string
	// SellerPrefixes are the seller-area path family.
	SellerPrefixes []string
	LoginRoute      string
	OnboardingRoute string
	RedirectStatus  int
	// Filter skips the guard entirely when it returns true.
	Filter func(router.Context) bool
}

func New(config ...Config) router.MiddlewareFunc {
	cfg := configDefault(config...)

	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return ctx.Next()
			}

			hasCookie := ctx.Cookies(cfg.CookieName) != ""

			switch Decide(cfg, ctx.Path(), hasCookie) {
			case OutcomeRedirectLogin:
				return ctx.Redirect(cfg.LoginRoute, cfg.RedirectStatus)
			case OutcomeRedirectOnboarding:
				return ctx.Redirect(cfg.OnboardingRoute, cfg.RedirectStatus)
			default:
				return ctx.Next()
			}
		}
	}
}

// Decide is the pure decision table:
//
//	cookie absent  + seller-area -> redirect login
//	cookie present + auth page   -> redirect onboarding
//	cookie absent  + auth page   -> allow
//	cookie present + seller-area -> allow
//
// Paths outside both families bypass the guard.
func Decide(cfg Config, path string, hasCookie bool) Outcome {
	switch {
	case matchesPrefix(path, cfg.SellerPrefixes):
		if !hasCookie {
			return OutcomeRedirectLogin
		}
		return OutcomeAllow
	case matchesPrefix(path, cfg.AuthPrefixes):
		if hasCookie {
			return OutcomeRedirectOnboarding
		}
		return OutcomeAllow
	default:
		return OutcomeBypass
	}
}

func matchesPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix == "" {
			continue
		}
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
		// Configured trailing slash matches its own subtree only.
		if strings.HasSuffix(prefix, "/") && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func configDefault(config ...Config) Config {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.CookieName == "" {
		cfg.CookieName = "seller_token"
	}
	if len(cfg.AuthPrefixes) == 0 {
		cfg.AuthPrefixes = []string{"/auth"}
	}
	if len(cfg.SellerPrefixes) == 0 {
		cfg.SellerPrefixes = []string{"/seller", "/dashboard"}
	}
	if cfg.LoginRoute == "" {
		cfg.LoginRoute = "/auth/login"
	}
	if cfg.OnboardingRoute == "" {
		cfg.OnboardingRoute = "/seller/onboarding"
	}
	if cfg.RedirectStatus == 0 {
		cfg.RedirectStatus = http.StatusFound
	}

	return cfg
}
