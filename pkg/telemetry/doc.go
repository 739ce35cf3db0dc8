// Package telemetry provides OpenTelemetry integration for distributed tracing
// and metrics, with support for:
//   - Distributed tracing spans around each parse (one span per CreatePassage call)
//   - Prometheus metrics for parse and action-level statistics
//   - A TelemetryObserver bridging pkg/observer events into both, without
//     pkg/observer or pkg/pstate depending on this package
package telemetry
