package server

import "errors"

// ErrUnknownActionKind is returned when a parse request's action trace
// names a kind not in the ten-member action vocabulary.
var ErrUnknownActionKind = errors.New("server: unknown action kind")
