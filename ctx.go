package console

import (
	"context"
)

var sessionCtxKey = &contextKey{"session"}
var profileCtxKey = &contextKey{"profile"}

type contextKey struct {
	name string
}

// WithSession sets the Session in the given context
func WithSession(r context.Context, session Session) context.Context {
	return context.WithValue(r, sessionCtxKey, session)
}

// SessionFromContext finds the session from the context.
func SessionFromContext(ctx context.Context) (Session, bool) {
	raw, ok := ctx.Value(sessionCtxKey).(Session)
	return raw, ok
}

// WithProfile sets the resolved Profile in the given context
func WithProfile(r context.Context, profile *Profile) context.Context {
	return context.WithValue(r, profileCtxKey, profile)
}

// ProfileFromContext finds the profile from the context.
func ProfileFromContext(ctx context.Context) (*Profile, bool) {
	raw, ok := ctx.Value(profileCtxKey).(*Profile)
	return raw, ok
}

// RequireProfile returns the profile or ErrNoSession when the context
// carries none.
func RequireProfile(ctx context.Context) (*Profile, error) {
	profile, ok := ProfileFromContext(ctx)
	if !ok || profile == nil {
		return nil, ErrNoSession
	}
	return profile, nil
}
