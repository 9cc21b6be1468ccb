package services

import (
	"errors"
	"fmt"

	"food-order/store"
)

// Notice turns an error from the command interface into the message shown
// to the customer. Unexpected errors get a generic message.
func Notice(err error) string {
	var throttled *ThrottledError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &throttled):
		return fmt.Sprintf("Login failed: too many attempts, try again in %d seconds.", throttled.WaitSeconds)
	case errors.Is(err, ErrEmptyCredentials):
		return "Signup failed: email and password cannot be empty."
	case errors.Is(err, ErrAccountExists):
		return "Signup failed: email already exists."
	case errors.Is(err, ErrInvalidCredentials):
		return "Login failed: invalid email or password."
	case errors.Is(err, ErrEmptyOrder):
		return "Order error: no items selected."
	case errors.Is(err, ErrUnknownItem):
		return "There is no such item on the menu."
	case errors.Is(err, ErrNoSuchLine):
		return "There is no such line in your order."
	case errors.Is(err, store.ErrNoHistory):
		return "No order history available."
	}
	return "Something went wrong, please try again."
}

// IsNotice reports whether err is an expected outcome (validation,
// duplicate, bad credentials, missing history) rather than a failure.
func IsNotice(err error) bool {
	var throttled *ThrottledError
	return errors.As(err, &throttled) ||
		errors.Is(err, ErrEmptyCredentials) ||
		errors.Is(err, ErrAccountExists) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrEmptyOrder) ||
		errors.Is(err, ErrUnknownItem) ||
		errors.Is(err, ErrNoSuchLine) ||
		errors.Is(err, store.ErrNoHistory)
}
