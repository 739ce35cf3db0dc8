// Package server provides an HTTP API exposing the parser as a service.
// It enables programmatic access to CreatePassage with support for:
//   - A parse endpoint accepting tokens plus a recorded action trace
//   - Health check and readiness endpoints
//   - Prometheus metrics endpoint
//   - Request/response logging and panic recovery
//   - Graceful shutdown
package server
