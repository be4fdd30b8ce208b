// Package client contains the transport side of the musicvideos CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     account calls (Register, Login, Logout, Ping) and the video catalogue
//     (AddVideo, ListVideos, GetVideo, UpdateVideo, DeleteVideo).
//  2. A gRPC implementation (see GRPCClient) that manages a connection,
//     injects the session token via an interceptor and maps gRPC status codes
//     to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite file and applying embedded goose migrations.
//
// # Error Handling
//
// Server failures surface as sentinel errors that callers match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrInvalidCredentials,
// ErrValidation, ErrAlreadyExists, ErrNotFound.
package client
