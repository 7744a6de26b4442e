package domain

import "errors"

// ErrNotFound is returned by external lookups that found nothing.
var ErrNotFound = errors.New("not found")

// ErrUpstream marks a failure of an external service, as opposed to a
// failure of local state.
var ErrUpstream = errors.New("upstream service failed")
