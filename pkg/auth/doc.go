// Package auth guards protected routes.
//
// Authentication uses a chain-of-responsibility pattern with three-outcome
// voting: each authenticator returns Yes (identity found), No (credentials
// invalid), or Abstain (can't handle). A configurable default voter decides
// when all authenticators abstain.
//
// The chain runs as HTTP middleware in front of the protected handlers, and
// the resolved identity is passed to them through the request context.
// Subpackages provide the bearer token authenticator (jwt) and the
// credential hasher (password).
package auth
