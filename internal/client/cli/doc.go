// Package cli provides the interactive musicvideos command-line client.
//
// It wires configuration, the local session store, the gRPC client and a
// REPL. On start the last saved session is restored, a background watcher
// pings the server to show whether it is reachable, and user commands are
// executed until "exit".
//
// Commands:
//   - register / login / logout
//   - add / list / show / edit / delete for the user's music videos
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
