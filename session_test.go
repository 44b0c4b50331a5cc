package console_test

import (
	"context"
	"testing"

	console "github.com/goliatone/go-console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSellerStatus(t *testing.T) {
	tests := []struct {
		input  string
		want   console.SellerStatus
		wantOK bool
	}{
		{"approved", console.SellerStatusApproved, true},
		{"APPROVED", console.SellerStatusApproved, true},
		{" Pending ", console.SellerStatusPending, true},
		{"rejected", console.SellerStatusRejected, true},
		{"none", console.SellerStatusNone, true},
		{"", console.SellerStatusNone, false},
		{"banana", console.SellerStatusNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := console.ParseSellerStatus(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestSession(t *testing.T) {
	t.Run("empty session", func(t *testing.T) {
		s := console.Session{}
		assert.False(t, s.Authenticated())
		assert.False(t, s.Usable())
	})

	t.Run("token without profile", func(t *testing.T) {
		s := console.Session{Token: "tok"}
		assert.True(t, s.Authenticated())
		assert.False(t, s.Usable())
	})

	t.Run("resolved session", func(t *testing.T) {
		s := console.Session{Token: "tok", User: &console.Profile{ID: "usr-1"}}
		assert.True(t, s.Authenticated())
		assert.True(t, s.Usable())
	})

	t.Run("string never leaks the token", func(t *testing.T) {
		s := console.Session{Token: "secret.token", User: &console.Profile{ID: "usr-1"}}
		assert.NotContains(t, s.String(), "secret.token")
		assert.Contains(t, s.String(), "usr-1")
	})
}

func TestProfileHelpers(t *testing.T) {
	var nilProfile *console.Profile
	assert.False(t, nilProfile.IsAdmin())
	assert.False(t, nilProfile.Approved())

	admin := &console.Profile{Role: console.RoleAdmin}
	assert.True(t, admin.IsAdmin())

	approved := &console.Profile{SellerStatus: console.SellerStatusApproved}
	assert.True(t, approved.Approved())
	assert.False(t, approved.IsAdmin())
}

func TestSessionContext(t *testing.T) {
	ctx := context.Background()

	_, ok := console.SessionFromContext(ctx)
	assert.False(t, ok)

	session := console.Session{Token: "tok"}
	ctx = console.WithSession(ctx, session)

	got, ok := console.SessionFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, session, got)
}

func TestProfileContext(t *testing.T) {
	ctx := context.Background()

	_, err := console.RequireProfile(ctx)
	require.ErrorIs(t, err, console.ErrNoSession)

	profile := &console.Profile{ID: "usr-1"}
	ctx = console.WithProfile(ctx, profile)

	got, err := console.RequireProfile(ctx)
	require.NoError(t, err)
	assert.Same(t, profile, got)
}
