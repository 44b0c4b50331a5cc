package console_test

import (
	"context"

	console "github.com/goliatone/go-console"
	"github.com/stretchr/testify/mock"
)

// MockTokenStore implements console.TokenStore
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Read(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockTokenStore) Write(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockProfileFetcher implements console.ProfileFetcher
type MockProfileFetcher struct {
	mock.Mock
}

func (m *MockProfileFetcher) FetchProfile(ctx context.Context, token string) (*console.Profile, error) {
	args := m.Called(ctx, token)
	profile, _ := args.Get(0).(*console.Profile)
	return profile, args.Error(1)
}

// MockStatusSource implements console.StatusSource
type MockStatusSource struct {
	mock.Mock
}

func (m *MockStatusSource) RequestStatus(ctx context.Context) (*console.SellerRequest, error) {
	args := m.Called(ctx)
	req, _ := args.Get(0).(*console.SellerRequest)
	return req, args.Error(1)
}

// MockNavigator implements console.Navigator
type MockNavigator struct {
	mock.Mock
}

func (m *MockNavigator) Redirect(path string, status ...int) error {
	if len(status) > 0 {
		args := m.Called(path, status)
		return args.Error(0)
	}
	args := m.Called(path)
	return args.Error(0)
}
