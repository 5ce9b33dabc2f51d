package apperr

import "errors"

// Invalid is returned when the input fails domain validation.
var Invalid = errors.New("invalid input")

// NotFound indicates that the requested resource does not exist.
var NotFound = errors.New("not found")

// Conflict indicates a uniqueness or state conflict (HTTP 409).
var Conflict = errors.New("conflict")

// LoadFailed aggregates any snapshot query failure. A snapshot is
// all-or-nothing: partial results are never surfaced alongside it.
var LoadFailed = errors.New("load failed")
