// Package api defines the wire types of the clauselens HTTP API.
//
// It provides the request and response bodies for signup, login and
// contract analysis, the structured error envelope returned on failure,
// and the request validation rules shared by the transport layer.
//
// The package performs no I/O. All types produce JSON in the shape the
// clients of the original contract analyzer expect (snake_case fields,
// "bearer" token type).
//
// Core types:
//   - [Credentials]: identity and secret for signup and login
//   - [TokenResponse]: issued bearer token
//   - [AnalyzeRequest] / [AnalyzeResponse]: contract text in, analysis out
//   - [APIError]: structured error with type, code, param, and message
package api
