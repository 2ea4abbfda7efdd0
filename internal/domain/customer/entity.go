package customer

import (
	"time"
)

type (
	ID       int64
	Customer struct {
		ID        ID
		FirstName string
		LastName  string
		Email     string
		Phone     string
		BirthDate *time.Time
		Active    bool
	}
	Customers []*Customer
)

const DefaultPageSize = 10

type (
	// ListParams carries the raw listing inputs as received from the
	// caller. Values are normalized before they reach the store.
	ListParams struct {
		SearchTerm     string
		OrderBy        string
		OrderDirection string
		PageNumber     int
		PageSize       int
	}

	// PaginatedResult is a transient page-shaped view of the matching
	// customers. It is computed fresh on every listing, never cached.
	PaginatedResult struct {
		Data        Customers
		TotalItems  int
		TotalPages  int
		CurrentPage int
		PageSize    int
	}
)

// Normalized clamps the pagination inputs: pages start at 1 and a
// non-positive page size falls back to DefaultPageSize. Listing never
// rejects bad input.
func (p ListParams) Normalized() ListParams {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	return p
}
