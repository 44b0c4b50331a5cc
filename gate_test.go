package console_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	console "github.com/goliatone/go-console"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func gateConfig() *console.EnvConfig {
	return &console.EnvConfig{
		OnboardingRoute: "/seller/onboarding",
		StatusCacheTTL:  30,
	}
}

func TestStatusGate_AllowsMatchingStatus(t *testing.T) {
	source := new(MockStatusSource)
	source.On("RequestStatus", mock.Anything).
		Return(&console.SellerRequest{Status: console.SellerStatusApproved}, nil).Once()

	gate := console.NewStatusGate(source, gateConfig())

	decision, err := gate.Check(context.Background(), console.SellerStatusApproved)
	require.NoError(t, err)

	assert.True(t, decision.Allow)
	assert.Equal(t, console.SellerStatusApproved, decision.Status)
	source.AssertExpectations(t)
}

func TestStatusGate_RedirectsMismatchedStatus(t *testing.T) {
	source := new(MockStatusSource)
	source.On("RequestStatus", mock.Anything).
		Return(&console.SellerRequest{Status: console.SellerStatusPending}, nil).Once()

	gate := console.NewStatusGate(source, gateConfig())

	decision, err := gate.Check(context.Background(), console.SellerStatusApproved)
	require.NoError(t, err)

	assert.False(t, decision.Allow)
	assert.Equal(t, "/seller/onboarding", decision.RedirectTo)
	assert.Equal(t, console.SellerStatusPending, decision.Status)
}

func TestStatusGate_NormalizesStatusCase(t *testing.T) {
	source := new(MockStatusSource)
	source.On("RequestStatus", mock.Anything).
		Return(&console.SellerRequest{Status: "APPROVED"}, nil).Once()

	gate := console.NewStatusGate(source, gateConfig())

	decision, err := gate.Check(context.Background(), console.SellerStatusApproved)
	require.NoError(t, err)
	assert.True(t, decision.Allow)
}

func TestStatusGate_CachesWithinTTL(t *testing.T) {
	source := new(MockStatusSource)
	source.On("RequestStatus", mock.Anything).
		Return(&console.SellerRequest{Status: console.SellerStatusApproved}, nil).Once()

	now := time.Now()
	gate := console.NewStatusGate(source, gateConfig()).WithClock(func() time.Time {
		return now
	})

	for i := 0; i < 5; i++ {
		decision, err := gate.Check(context.Background(), console.SellerStatusApproved)
		require.NoError(t, err)
		assert.True(t, decision.Allow)
	}

	// one backend call for five checks
	source.AssertNumberOfCalls(t, "RequestStatus", 1)
}

func TestStatusGate_ExpiredCacheRefetches(t *testing.T) {
	source := new(MockStatusSource)
	source.On("RequestStatus", mock.Anything).
		Return(&console.SellerRequest{Status: console.SellerStatusApproved}, nil)

	now := time.Now()
	gate := console.NewStatusGate(source, gateConfig()).WithClock(func() time.Time {
		return now
	})

	_, err := gate.Check(context.Background(), console.SellerStatusApproved)
	require.NoError(t, err)

	now = now.Add(31 * time.Second)

	_, err = gate.Check(context.Background(), console.SellerStatusApproved)
	require.NoError(t, err)

	source.AssertNumberOfCalls(t, "RequestStatus", 2)
}

func TestStatusGate_InvalidateForcesFetch(t *testing.T) {
	source := new(MockStatusSource)
	source.On("RequestStatus", mock.Anything).
		Return(&console.SellerRequest{Status: console.SellerStatusPending}, nil)

	gate := console.NewStatusGate(source, gateConfig())

	_, err := gate.Check(context.Background(), console.SellerStatusPending)
	require.NoError(t, err)

	gate.Invalidate()

	_, err = gate.Check(context.Background(), console.SellerStatusPending)
	require.NoError(t, err)

	source.AssertNumberOfCalls(t, "RequestStatus", 2)
}

func TestStatusGate_AuthFailureRedirectsToOnboarding(t *testing.T) {
	source := new(MockStatusSource)
	source.On("RequestStatus", mock.Anything).
		Return(nil, authRejectedErr(t)).Once()

	gate := console.NewStatusGate(source, gateConfig())

	decision, err := gate.Check(context.Background(), console.SellerStatusApproved)
	require.NoError(t, err)

	assert.False(t, decision.Allow)
	assert.Equal(t, "/seller/onboarding", decision.RedirectTo)
}

func TestStatusGate_TransportFailureReturnsError(t *testing.T) {
	source := new(MockStatusSource)
	source.On("RequestStatus", mock.Anything).
		Return(nil, errors.New("connection reset")).Once()

	gate := console.NewStatusGate(source, gateConfig())

	_, err := gate.Check(context.Background(), console.SellerStatusApproved)
	require.Error(t, err)
}

func TestStatusGate_CanceledContextDecidesNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	source := new(MockStatusSource)
	source.On("RequestStatus", mock.Anything).
		Run(func(args mock.Arguments) { cancel() }).
		Return(nil, context.Canceled).Once()

	gate := console.NewStatusGate(source, gateConfig())

	decision, err := gate.Check(ctx, console.SellerStatusApproved)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, decision.Allow)
	assert.Empty(t, decision.RedirectTo)
}

func TestStatusGate_RequireStatusMiddleware(t *testing.T) {
	t.Run("redirects on mismatch", func(t *testing.T) {
		source := new(MockStatusSource)
		source.On("RequestStatus", mock.Anything).
			Return(&console.SellerRequest{Status: console.SellerStatusRejected}, nil).Once()

		gate := console.NewStatusGate(source, gateConfig())

		handlerCalled := false
		handler := gate.RequireStatus(console.SellerStatusApproved)(func(ctx router.Context) error {
			handlerCalled = true
			return nil
		})

		mockCtx := router.NewMockContext()
		mockCtx.On("Context").Return(context.Background())
		mockCtx.On("OriginalURL").Return("/seller/products")
		mockCtx.On("Redirect", "/seller/onboarding", []int{http.StatusFound}).Return(nil).Once()

		require.NoError(t, handler(mockCtx))
		assert.False(t, handlerCalled)
		mockCtx.AssertExpectations(t)
	})

	t.Run("passes through on match", func(t *testing.T) {
		source := new(MockStatusSource)
		source.On("RequestStatus", mock.Anything).
			Return(&console.SellerRequest{Status: console.SellerStatusApproved}, nil).Once()

		gate := console.NewStatusGate(source, gateConfig())

		handlerCalled := false
		handler := gate.RequireStatus(console.SellerStatusApproved)(func(ctx router.Context) error {
			handlerCalled = true
			return nil
		})

		mockCtx := router.NewMockContext()
		mockCtx.On("Context").Return(context.Background())

		require.NoError(t, handler(mockCtx))
		assert.True(t, handlerCalled)
	})

	t.Run("renders error page with retry on transport failure", func(t *testing.T) {
		source := new(MockStatusSource)
		source.On("RequestStatus", mock.Anything).
			Return(nil, errors.New("gateway timeout")).Once()

		gate := console.NewStatusGate(source, gateConfig())

		handler := gate.RequireStatus(console.SellerStatusApproved)(func(ctx router.Context) error {
			return nil
		})

		mockCtx := router.NewMockContext()
		mockCtx.On("Context").Return(context.Background())
		mockCtx.On("OriginalURL").Return("/seller/products")
		mockCtx.On("Render", "errors/status_check", mock.Anything).Return(nil).Once()

		require.NoError(t, handler(mockCtx))
		mockCtx.AssertExpectations(t)
	})
}

// authRejectedErr builds a classified 401 the way the gateway does.
func authRejectedErr(t *testing.T) error {
	t.Helper()
	return console.ClassifyStatus(http.StatusUnauthorized, "")
}
