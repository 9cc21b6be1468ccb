package services

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCredentials   = errors.New("email and password cannot be empty")
	ErrAccountExists      = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmptyOrder         = errors.New("no items selected")
	ErrUnknownItem        = errors.New("unknown menu item")
	ErrNoSuchLine         = errors.New("no such line in the order")
)

// ThrottledError is returned by SubmitLogin while an identifier is cooling
// down after failed attempts.
type ThrottledError struct {
	WaitSeconds int
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("too many failed login attempts, retry in %ds", e.WaitSeconds)
}
