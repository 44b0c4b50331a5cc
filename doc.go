// Package console implements the client half of a seller-management
// console: session lifecycle, credential storage, an API gateway client
// with centralized failure routing, edge route guarding, and typed
// clients for the backend's seller-facing resources.
//
// Session lifecycle:
//
//	INITIALIZING -> AUTHENTICATING -> AUTHENTICATED
//	            \-> ANONYMOUS       \-> ANONYMOUS (stale token retained)
//
// The credential is written to two places on login: a durable TokenStore
// read by in-process code, and a session cookie read by the edge route
// guard (middleware/guardware). The two writes are paired inside
// SessionManager.LoginWithToken and must stay that way; Logout clears
// both.
//
// Outbound calls go through Client, which attaches the bearer token at
// send time and classifies every failure (network, auth, forbidden,
// not-found, server, validation). Call sites opt out of the global
// redirect policy with WithLocalErrorHandling when they want to render
// failures inline.
package console
