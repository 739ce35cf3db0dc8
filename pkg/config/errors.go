package config

import "errors"

// Sentinel errors for configuration validation.
var (
	ErrInvalidMaxNodesRatio = errors.New("invalid max nodes ratio: must be non-negative")
	ErrInvalidLogLevel      = errors.New("invalid log level")

	// Document loading errors
	ErrInvalidConfigDocument = errors.New("configuration document failed schema validation")
	ErrConfigParseFailed     = errors.New("failed to parse configuration document")
)
