package validator

import (
	"strconv"

	"customer-records-api/internal/domain/customer"
)

// IsCustomerID reports whether s is a usable path id (a positive integer).
func IsCustomerID(s string) (bool, customer.ID) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return false, 0
	}
	return true, customer.ID(id)
}

// IntOrDefault parses a numeric query value, falling back to def when the
// value is absent or not a number. Listing inputs never cause a rejection.
func IntOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
