package ports

import (
	"context"

	"customer-records-api/internal/domain/customer"
)

type CustomerService interface {
	FindCustomers(ctx context.Context, params customer.ListParams) (*customer.PaginatedResult, error)
	FindCustomerByID(ctx context.Context, id customer.ID) (*customer.Customer, error)
	FindCustomerByEmail(ctx context.Context, email string) (*customer.Customer, error)
	CreateCustomer(ctx context.Context, c customer.Customer) (*customer.Customer, error)
	UpdateCustomer(ctx context.Context, id customer.ID, c customer.Customer) error
	DeleteCustomer(ctx context.Context, id customer.ID) error
}
