package entity

import "errors"

// ErrNotFound is returned when a requested row does not exist. Handlers map
// it to 404; it is never retried.
var ErrNotFound = errors.New("not found")
