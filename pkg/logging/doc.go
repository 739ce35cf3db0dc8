// Package logging provides structured logging for the parser, built on
// Go's slog package.
//
// # Output formats
//
// JSON (production):
//
//	{"time":"2026-07-31T10:30:00Z","level":"INFO","msg":"parse finished","passage_id":"p-123","action_index":42}
//
// Text (development, Config.Pretty):
//
//	time=2026-07-31T10:30:00Z level=INFO msg="parse finished" passage_id=p-123 action_index=42
//
// # Context propagation
//
//	ctx = logger.WithContext(ctx)
//	logging.FromContext(ctx).WithPassageID(p.ID).Info("parse finished")
//
// # Structured fields
//
// WithPassageID, WithNodeIndex, WithActionIndex, and WithEdgeTag attach the
// fields pkg/pstate and pkg/passage care about; WithField/WithFields/WithError
// cover everything else.
package logging
