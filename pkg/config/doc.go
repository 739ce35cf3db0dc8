// Package config provides the per-State options record that governs parser
// behavior, replacing any hidden process-wide configuration singleton:
// every pstate.State is constructed with its own Options value.
//
// # Configuration Structure
//
//   - Verify: re-check AssertValid and stack/buffer disjointness inside
//     Transition (edge preconditions and passage.Builder.Create's checks
//     run regardless).
//   - Verbose: emit diagnostics about auto-corrected terminal tags.
//   - MaxNodesRatio: cap on len(nodes)/len(terminals) - 1, beyond which
//     NODE/IMPLICIT become invalid.
//
// # Basic Usage
//
//	opts := config.Default()
//	s := pstate.New(paragraphs, "p1", opts, nil)
//
// # Profiles
//
// Default returns conservative production defaults (verification on,
// a modest node-ratio cap). Development relaxes the ratio cap and turns
// on Verbose for local debugging. Testing turns Verify on and caps
// Verbose off, matching what the test suite in this module expects.
//
// # Loading From a Document
//
// LoadJSON decodes an Options document and validates it against an
// embedded JSON Schema before returning it, so a malformed external
// configuration file is rejected before it ever reaches a State.
package config
