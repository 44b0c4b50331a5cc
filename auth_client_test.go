package console_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	console "github.com/goliatone/go-console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthAPI(t *testing.T, handler http.Handler) (*console.AuthAPI, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := gatewayConfig(srv.URL)
	cfg.PhoneRegion = "IN"

	client := console.NewClient(console.NewMemoryTokenStore(), cfg)
	return console.NewAuthAPI(client, cfg), srv
}

func TestAuthAPI_LoginWithPassword(t *testing.T) {
	auth, _ := newAuthAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login/password", r.URL.Path)

		var payload console.PasswordLoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "asha@example.com", payload.Email)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(console.AuthResult{
			Token: "issued.token",
			User:  &console.Profile{ID: "usr-1", Email: payload.Email},
		})
	}))

	res, err := auth.LoginWithPassword(context.Background(), console.PasswordLoginRequest{
		Email:    "asha@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "issued.token", res.Token)
	assert.Equal(t, "usr-1", res.User.ID)
}

func TestAuthAPI_LoginWithPasswordRejected(t *testing.T) {
	auth, _ := newAuthAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := auth.LoginWithPassword(context.Background(), console.PasswordLoginRequest{
		Email:    "asha@example.com",
		Password: "wrong",
	})
	require.Error(t, err)

	// the rejection stays local for the login form to render
	assert.True(t, console.IsAuthRejected(err))
}

func TestAuthAPI_LoginWithInvalidPayload(t *testing.T) {
	called := false
	auth, _ := newAuthAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := auth.LoginWithPassword(context.Background(), console.PasswordLoginRequest{
		Email: "not-an-email",
	})
	require.Error(t, err)
	assert.False(t, called)
}

func TestAuthAPI_SendLoginOTPNormalizesPhone(t *testing.T) {
	var seenPhone string
	auth, _ := newAuthAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login/otp/send", r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		seenPhone = payload["phone"]
	}))

	// local formats all collapse to E.164
	for _, raw := range []string{"98765 43210", "09876543210", "+91 98765 43210"} {
		require.NoError(t, auth.SendLoginOTP(context.Background(), raw))
		assert.Equal(t, "+919876543210", seenPhone)
	}
}

func TestAuthAPI_SendLoginOTPRejectsBadPhone(t *testing.T) {
	called := false
	auth, _ := newAuthAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	err := auth.SendLoginOTP(context.Background(), "12345")
	require.Error(t, err)
	assert.False(t, called)
}

func TestAuthAPI_VerifyLoginOTP(t *testing.T) {
	auth, _ := newAuthAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login/otp/verify", r.URL.Path)

		var payload console.OTPVerifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "+919876543210", payload.Phone)
		assert.Equal(t, "123456", payload.OTP)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(console.AuthResult{Token: "otp.token"})
	}))

	res, err := auth.VerifyLoginOTP(context.Background(), "9876543210", "123456")
	require.NoError(t, err)
	assert.Equal(t, "otp.token", res.Token)
}

func TestAuthAPI_VerifyLoginOTPRejectsMalformedCode(t *testing.T) {
	called := false
	auth, _ := newAuthAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := auth.VerifyLoginOTP(context.Background(), "9876543210", "12ab")
	require.Error(t, err)
	assert.False(t, called)
}

func TestAuthAPI_SignupFlow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		var payload console.SignupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "+919876543210", payload.Phone)
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/auth/signup/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(console.AuthResult{
			Token: "signup.token",
			User:  &console.Profile{ID: "usr-9", SellerStatus: console.SellerStatusNone},
		})
	})

	auth, _ := newAuthAPI(t, mux)

	err := auth.Signup(context.Background(), console.SignupRequest{
		Name:     "Asha Traders",
		Email:    "asha@example.com",
		Phone:    "98765 43210",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	res, err := auth.VerifySignupOTP(context.Background(), "9876543210", "654321")
	require.NoError(t, err)
	assert.Equal(t, "signup.token", res.Token)
	assert.Equal(t, console.SellerStatusNone, res.User.SellerStatus)
}
