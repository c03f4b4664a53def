// Package session owns the authentication lifecycle for the tracker
// client.
//
// A Manager holds the bearer token and the resolved user identity. The
// session is authenticated only when both are present; a token without
// a resolved user is not enough. There are exactly two durable states:
//
//	Unauthenticated -> (login success | restore success) -> Authenticated
//	Authenticated   -> (logout | refresh failure | identity failure) -> Unauthenticated
//
// Every transition keeps the in-memory token and the persisted
// credential slot in sync. The manager is constructed explicitly with
// its gateway and credential store; there is no package-level session.
package session
