// Package gateway is the single outbound channel for tracker API calls.
//
// Every request passes through one choke point that attaches the bearer
// credential, a request ID, and client identification headers, and every
// failed response is normalized into an *APIError before it reaches a
// caller. No raw transport error or raw server payload escapes this
// package. A 401 additionally clears the persisted credential as a side
// effect; redirecting the user is left to whoever guards navigation.
package gateway
