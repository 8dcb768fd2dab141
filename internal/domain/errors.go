package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource (a hunt, a package session) does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required inquiry field).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrCatalogUnavailable is returned when the hunt catalog could not be read
// or parsed. No pricing operation can run until a later load succeeds.
// Handlers should map this to HTTP 503.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// ErrUnknownOffering is returned when a selection references a hunt id that
// the catalog does not contain.
var ErrUnknownOffering = errors.New("unknown offering")

// ErrInvalidSelection is returned when a selection carries an out-of-range
// value (negative quantity, zero hunters, duplicate lines, ...).
// The pricing engine never clamps; it fails with this error instead.
var ErrInvalidSelection = errors.New("invalid selection")
