// Package main provides the entry point for custrack.
//
// custrack is the command-line client for the customer tracking CRM:
//
//   - Session management (login, logout, refresh, whoami, status)
//   - Customer management (list, get, create, update, delete)
//   - Follow-up tracking (list, create, update, delete, export)
//   - Configuration management
//
// Usage:
//
//	custrack [command] [flags]
//	custrack customer list --search acme -o json
//	custrack track export --customer 7 --out tracks.csv
//
// Running custrack shell starts the interactive mode, which keeps a
// current view and navigates between views like the browser client.
package main
