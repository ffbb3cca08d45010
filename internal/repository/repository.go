package repository

import "errors"

// ErrNotFound is returned when an update or delete targets a missing row.
// Lookups surface pgx.ErrNoRows directly.
var ErrNotFound = errors.New("record not found")
