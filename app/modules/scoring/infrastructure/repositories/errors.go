package scoringdb

import "errors"

// ErrNotFound is returned when a lookup matches no row. Callers translate it
// to the request-appropriate not-found message.
var ErrNotFound = errors.New("record not found")
