package services

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode"

	domain "customer-records-api/internal/domain/customer"
)

var (
	// one local part, one @, a dot somewhere in the domain, no whitespace
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^[0-9]{7,15}$`)
)

// validateCustomer is the gate in front of both writes. Checks run in a
// fixed order and the first failure wins: required fields (firstName,
// lastName, email), email shape, duplicate email, future birth date,
// then the optional phone. The duplicate lookup excludes the record
// itself so an update keeping its own email passes. The lookup is a
// best-effort pre-check; the store's unique index is the backstop and
// the repository reports its violation as ErrDuplicateEmail.
func (cs *CustomerService) validateCustomer(ctx context.Context, c domain.Customer) error {
	switch {
	case strings.TrimSpace(c.FirstName) == "":
		return &domain.MissingFieldError{Field: "firstName"}
	case strings.TrimSpace(c.LastName) == "":
		return &domain.MissingFieldError{Field: "lastName"}
	case strings.TrimSpace(c.Email) == "":
		return &domain.MissingFieldError{Field: "email"}
	}

	if !emailRe.MatchString(c.Email) {
		return domain.ErrInvalidEmail
	}

	existing, err := cs.customerRepository.FetchCustomerByEmail(ctx, c.Email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != c.ID {
		return domain.ErrDuplicateEmail
	}

	if c.BirthDate != nil && c.BirthDate.After(time.Now()) {
		return domain.ErrFutureBirthDate
	}

	if c.Phone != "" && !phoneRe.MatchString(stripSpaces(c.Phone)) {
		return domain.ErrInvalidPhone
	}

	return nil
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
