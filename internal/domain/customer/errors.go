package customer

import "errors"

var (
	ErrNotFound        = errors.New("customer not found")
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidPhone    = errors.New("phone must contain 7-15 digits")
	ErrFutureBirthDate = errors.New("birth date cannot be in the future")
	ErrIDMismatch      = errors.New("url id does not match the customer id in the payload")
)

// MissingFieldError reports the first required field found blank,
// in the fixed firstName, lastName, email order.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string { return e.Field + " is required" }
