package config

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/xeipuuv/gojsonschema"
)

// Options governs a single pstate.State's behavior. There is no process-wide
// configuration singleton: every State is constructed with its own Options
// value, so a server handling concurrent parse requests never has to worry
// about one request's settings leaking into another's.
type Options struct {
	// Verify makes Transition re-check AssertValid before applying an
	// action and re-check stack/buffer disjointness after it. Edge
	// preconditions and passage.Builder.Create's double-materialization
	// check run whether or not Verify is set. Disabling it in production
	// trades a small
	// amount of safety for avoiding redundant work the caller already
	// guarantees (e.g. a classifier that only ever proposes actions
	// AssertValid has already approved).
	Verify bool

	// Verbose emits diagnostics about auto-corrected terminal tags and
	// other best-effort repairs made during passage construction.
	Verbose bool

	// MaxNodesRatio caps len(nodes)/len(terminals) - 1, beyond which
	// NODE and IMPLICIT actions become invalid. Guards against a runaway
	// policy that never converges toward FINISH.
	MaxNodesRatio float64

	// LogLevel is the ambient logging threshold ("debug", "info", "warn",
	// "error") passed through to pkg/logging when a State is wired into a
	// server or CLI command.
	LogLevel string
}

// Default returns conservative production defaults: verification on, a
// modest node-ratio cap, and info-level logging.
func Default() *Options {
	return &Options{
		Verify:        true,
		Verbose:       false,
		MaxNodesRatio: 10,
		LogLevel:      "info",
	}
}

// Development relaxes the node-ratio cap and turns on Verbose, for local
// debugging against hand-written token streams.
func Development() *Options {
	o := Default()
	o.Verbose = true
	o.MaxNodesRatio = 50
	o.LogLevel = "debug"
	return o
}

// Production mirrors Default but is kept distinct so callers can name their
// intent explicitly and so the two profiles can diverge later without
// disturbing Default's meaning.
func Production() *Options {
	return Default()
}

// Testing turns Verify on and Verbose off, matching what this module's own
// test suite expects: fail loudly on a structural fault, but keep test
// output free of diagnostic noise.
func Testing() *Options {
	return &Options{
		Verify:        true,
		Verbose:       false,
		MaxNodesRatio: 100,
		LogLevel:      "warn",
	}
}

// Validate checks that the option values are internally consistent.
func (o *Options) Validate() error {
	if o.MaxNodesRatio < 0 {
		return ErrInvalidMaxNodesRatio
	}
	switch o.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	return nil
}

// Clone returns an independent copy of o.
func (o *Options) Clone() *Options {
	clone := *o
	return &clone
}

// optionsSchema is the embedded JSON Schema LoadJSON validates a decoded
// configuration document against before handing it back to the caller. It
// mirrors the Options fields above; LogLevel's enum keeps an invalid level
// out of a document before it ever reaches Validate.
const optionsSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"verify": {"type": "boolean"},
		"verbose": {"type": "boolean"},
		"maxNodesRatio": {"type": "number", "minimum": 0},
		"logLevel": {"type": "string", "enum": ["debug", "info", "warn", "error", ""]}
	},
	"additionalProperties": false
}`

type optionsDocument struct {
	Verify        bool    `json:"verify"`
	Verbose       bool    `json:"verbose"`
	MaxNodesRatio float64 `json:"maxNodesRatio"`
	LogLevel      string  `json:"logLevel"`
}

// LoadJSON decodes an Options document from r and validates it against an
// embedded JSON Schema before returning it, so a malformed external
// configuration file is rejected with a precise error rather than silently
// zero-valuing unrecognized fields.
func LoadJSON(r io.Reader) (*Options, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	schemaLoader := gojsonschema.NewStringLoader(optionsSchema)
	docLoader := gojsonschema.NewBytesLoader(raw)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, ErrConfigParseFailed
	}
	if !result.Valid() {
		return nil, ErrInvalidConfigDocument
	}

	var doc optionsDocument
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, ErrConfigParseFailed
	}

	o := &Options{
		Verify:        doc.Verify,
		Verbose:       doc.Verbose,
		MaxNodesRatio: doc.MaxNodesRatio,
		LogLevel:      doc.LogLevel,
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}
