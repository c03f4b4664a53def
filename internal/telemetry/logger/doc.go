// Package logger provides structured logging for custrack.
//
// It wraps log/slog to provide structured JSON or text logging with
// automatic redaction of sensitive values (bearer tokens, passwords)
// and context-carried request IDs, so that a verbose run never leaks
// a credential into a terminal scrollback or a shipped log.
package logger
