package model

import "errors"

// ErrInvalid marks input that fails validation.
var ErrInvalid = errors.New("invalid input")
