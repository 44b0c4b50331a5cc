package console

import (
	"fmt"
	"strings"
)

// SellerStatus is the server-side approval state of a seller account.
type SellerStatus = string

const (
	SellerStatusNone     SellerStatus = "none"
	SellerStatusPending  SellerStatus = "pending"
	SellerStatusApproved SellerStatus = "approved"
	SellerStatusRejected SellerStatus = "rejected"
)

// ParseSellerStatus normalizes backend casing (the API reports
// "APPROVED", "PENDING", etc.).
func ParseSellerStatus(s string) (SellerStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case SellerStatusNone, "":
		return SellerStatusNone, s != ""
	case SellerStatusPending:
		return SellerStatusPending, true
	case SellerStatusApproved:
		return SellerStatusApproved, true
	case SellerStatusRejected:
		return SellerStatusRejected, true
	default:
		return SellerStatusNone, false
	}
}

// Role is the profile's role
type Role = string

const (
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// Profile is the resolved "who am I" payload.
type Profile struct {
	ID           string         `json:"id,omitempty"`
	Name         string         `json:"name,omitempty"`
	Email        string         `json:"email,omitempty"`
	Phone        string         `json:"phone,omitempty"`
	Role         Role           `json:"role,omitempty"`
	SellerStatus SellerStatus   `json:"sellerStatus,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// IsAdmin reports whether the profile carries the administrative role.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// Approved reports whether the seller account has been approved.
func (p *Profile) Approved() bool {
	return p != nil && p.SellerStatus == SellerStatusApproved
}

// SellerRequest is the fresh status read used by page gates.
type SellerRequest struct {
	Status SellerStatus `json:"status"`
	Reason string       `json:"reason,omitempty"`
}

// SessionState tracks where the session lifecycle currently is.
type SessionState = string

const (
	StateInitializing   SessionState = "initializing"
	StateAuthenticating SessionState = "authenticating"
	StateAuthenticated  SessionState = "authenticated"
	StateAnonymous      SessionState = "anonymous"
)

// Session is the in-memory credential + profile pair.
//
// Invariant: User is non-nil only while Token is non-empty. The reverse
// does not hold; a token may exist while the profile is still loading or
// after a profile fetch failed.
type Session struct {
	Token string   `json:"token,omitempty"`
	User  *Profile `json:"user,omitempty"`
}

// Authenticated reports token presence, nothing more.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Usable reports whether the session resolved to a profile. Callers must
// treat a loaded session with User == nil as not usable, not as still
// loading.
func (s Session) Usable() bool {
	return s.Token != "" && s.User != nil
}

func (s Session) String() string {
	user := "<nil>"
	if s.User != nil {
		user = s.User.ID
	}
	return fmt.Sprintf("token_set=%t user=%s", s.Token != "", user)
}
