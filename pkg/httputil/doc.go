// Package httputil provides HTTP server utilities shared by the pixmesh API.
//
// # Overview
//
// This package provides infrastructure used by every API handler:
//
//   - [RequestID]: Tags each request with a UUID in the X-Request-ID header
//   - [Logger]: Logs each request and reports it to the observability hooks
//   - [WriteError]: Maps coded errors to HTTP status codes and JSON bodies
//
// # Errors
//
// Handlers return errors from pkg/errors. [WriteError] turns them into
//
//	{"code": "INVALID_INPUT", "error": "thickness cannot be negative: -1"}
//
// with status 400 for INVALID_* codes, 404 for unknown routes, 413 for
// oversized bodies and 500 for everything else.
package httputil
