package domain

import "errors"

// ErrBaselineNotFound is returned when a named baseline cannot be found in the store.
var ErrBaselineNotFound = errors.New("baseline not found")
