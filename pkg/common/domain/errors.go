package domain

import "errors"

// ErrUnauthorized is returned when the requesting user does not own the
// resource it is acting on.
var ErrUnauthorized = errors.New("unauthorized resource")
