package service

import "errors"

// ErrValidation marks domain validation failures so handlers can answer 400
// instead of folding them in with infrastructure errors. Wrap it with the
// specific message: fmt.Errorf("%w: ...", ErrValidation).
var ErrValidation = errors.New("invalid input")
