// Package credstore persists the bearer credential between runs.
//
// The tracker client holds exactly one credential at a time: the slot
// is a single file under the user's config directory, sealed with an
// AEAD cipher keyed by a machine-local random key file. Absence of the
// slot means logged out. Every session mutation (login, logout, token
// refresh) writes through this package so that the in-memory token and
// the persisted one never diverge.
package credstore
