// Package service implements the application operations on top of the
// storage layer: expense CRUD with split validation, balance views,
// settlements, category summaries, group membership, and authentication.
package service

import (
	"errors"
	"fmt"
)

// ErrValidation marks input that was rejected before any mutation took
// place. Handlers map it to HTTP 400; match with errors.Is.
var ErrValidation = errors.New("validation failed")

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}
