// Package common contains shared constants and sentinel errors used across
// the musicvideos server and CLI.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the session
// token on privileged requests.
const AccessTokenHeaderName = "access_token"

// RequestIDHeaderName is the gRPC metadata key carrying a client supplied
// request id. The server generates one when it is absent.
const RequestIDHeaderName = "x-request-id"
