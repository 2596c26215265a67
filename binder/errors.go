package binder

import "errors"

// ErrInvalidForm marks a multipart request that could not be parsed or read.
var ErrInvalidForm = errors.New("invalid form data")
