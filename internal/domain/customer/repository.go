package customer

import (
	"context"
)

type Repository interface {
	FetchCustomers(ctx context.Context, params ListParams) (Customers, int, error)
	FetchCustomerByID(ctx context.Context, id ID) (*Customer, error)
	FetchCustomerByEmail(ctx context.Context, email string) (*Customer, error)
	CreateCustomer(ctx context.Context, req Customer) (*Customer, error)
	UpdateCustomer(ctx context.Context, req Customer) (bool, error)
	DeleteCustomer(ctx context.Context, id ID) (bool, error)
}
