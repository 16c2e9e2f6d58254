// Package client talks to the transkeeper gRPC service on behalf of the CLI.
//
// GRPCClient keeps the session tokens of the logged in user, attaches the
// access token to every call through a unary interceptor and transparently
// refreshes it once when the server reports it expired.
//
// Status codes are mapped to the sentinel errors ErrUnavailable,
// ErrUnauthorized and ErrForbidden; other failures carry the server message.
package client
