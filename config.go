package console

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvConfig is an environment-backed Config implementation. Zero values
// fall back to the same defaults the builders apply, so an empty
// environment still yields a working console.
type EnvConfig struct {
	APIBaseURL                string
	SessionCookieName         string
	CookieDuration            int
	RequestTimeout            int
	LoginRoute                string
	OnboardingRoute           string
	ForbiddenRoute            string
	NotFoundRoute             string
	ErrorRoute                string
	RejectedRouteKey          string
	RejectedRouteDefault      string
	StatusCacheTTL            int
	RetainTokenOnProfileError bool
	PhoneRegion               string
}

// LoadConfig reads configuration from environment variables, loading a
// .env file first when one is present.
func LoadConfig() *EnvConfig {
	_ = godotenv.Load(".env")

	return &EnvConfig{
		APIBaseURL:                getString("CONSOLE_API_BASE_URL", "http://localhost:3000/api/v1"),
		SessionCookieName:         getString("CONSOLE_SESSION_COOKIE", "seller_token"),
		CookieDuration:            getInt("CONSOLE_COOKIE_DURATION_HOURS", 24),
		RequestTimeout:            getInt("CONSOLE_REQUEST_TIMEOUT_SECONDS", 15),
		LoginRoute:                getString("CONSOLE_LOGIN_ROUTE", "/auth/login"),
		OnboardingRoute:           getString("CONSOLE_ONBOARDING_ROUTE", "/seller/onboarding"),
		ForbiddenRoute:            getString("CONSOLE_FORBIDDEN_ROUTE", "/403"),
		NotFoundRoute:             getString("CONSOLE_NOT_FOUND_ROUTE", "/404"),
		ErrorRoute:                getString("CONSOLE_ERROR_ROUTE", "/error"),
		RejectedRouteKey:          getString("CONSOLE_REJECTED_ROUTE_KEY", "rejected_route"),
		RejectedRouteDefault:      getString("CONSOLE_REJECTED_ROUTE_DEFAULT", "/dashboard"),
		StatusCacheTTL:            getInt("CONSOLE_STATUS_CACHE_TTL_SECONDS", 30),
		RetainTokenOnProfileError: getBool("CONSOLE_RETAIN_TOKEN_ON_PROFILE_ERROR", true),
		PhoneRegion:               getString("CONSOLE_PHONE_REGION", "IN"),
	}
}

func (c *EnvConfig) GetAPIBaseURL() string              { return c.APIBaseURL }
func (c *EnvConfig) GetSessionCookieName() string       { return c.SessionCookieName }
func (c *EnvConfig) GetCookieDuration() int             { return c.CookieDuration }
func (c *EnvConfig) GetRequestTimeout() int             { return c.RequestTimeout }
func (c *EnvConfig) GetLoginRoute() string              { return c.LoginRoute }
func (c *EnvConfig) GetOnboardingRoute() string         { return c.OnboardingRoute }
func (c *EnvConfig) GetForbiddenRoute() string          { return c.ForbiddenRoute }
func (c *EnvConfig) GetNotFoundRoute() string           { return c.NotFoundRoute }
func (c *EnvConfig) GetErrorRoute() string              { return c.ErrorRoute }
func (c *EnvConfig) GetRejectedRouteKey() string        { return c.RejectedRouteKey }
func (c *EnvConfig) GetRejectedRouteDefault() string    { return c.RejectedRouteDefault }
func (c *EnvConfig) GetStatusCacheTTL() int             { return c.StatusCacheTTL }
func (c *EnvConfig) GetRetainTokenOnProfileError() bool { return c.RetainTokenOnProfileError }
func (c *EnvConfig) GetPhoneRegion() string             { return c.PhoneRegion }

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}
