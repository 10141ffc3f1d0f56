package services

import "errors"

// ErrInvalidInput is returned when a computation is asked to run on arguments it cannot accept.
var ErrInvalidInput = errors.New("invalid input")
