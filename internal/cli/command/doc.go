// Package command defines the custrack CLI commands.
//
// The command tree mirrors the client's feature set:
//
//   - login / logout / whoami / refresh / status
//   - customer: list, get, create, update, delete, tracks
//   - track: list, create, update, delete, actions, export
//   - config: show, set, path, init
//   - shell: interactive mode with view navigation
//
// Commands run against an Env built in the Before hook, which wires
// configuration, the credential store, the API gateway, the session
// manager and the resource stores.
package command
