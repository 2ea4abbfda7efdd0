package customer

import (
	"time"
)

type (
	Customer struct {
		ID        int64
		FirstName string
		LastName  string
		Email     string
		Phone     *string
		BirthDate *time.Time
		Active    bool
	}
	Customers []*Customer
)
