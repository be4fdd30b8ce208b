// Package services contains application services for the musicvideos CLI.
//
// SessionService owns the account flow and keeps the current session in the
// local SQLite metadata store, so a later run of the CLI can pick it up again
// with Restore. VideoService forwards catalogue operations to the server
// with the restored session token.
package services
