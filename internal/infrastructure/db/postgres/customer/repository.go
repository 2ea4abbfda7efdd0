package customer

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"customer-records-api/internal/domain/customer"
	"customer-records-api/internal/infrastructure/db/postgres"
)

// DB is the slice of pgxpool.Pool the repository needs. pgxmock's pool
// satisfies it too, which is what the repository tests run against.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository struct {
	db DB
}

func NewRepository(db DB) customer.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchCustomers(ctx context.Context, params customer.ListParams) (customer.Customers, int, error) {
	q := BuildListQuery(params)

	rows, err := r.db.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var cs Customers
	for rows.Next() {
		c := new(Customer)

		if err = rows.Scan(
			&c.ID,
			&c.FirstName,
			&c.LastName,
			&c.Email,
			&c.Phone,
			&c.BirthDate,
			&c.Active,
		); err != nil {
			return nil, 0, err
		}

		cs = append(cs, c)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err = r.db.QueryRow(ctx, q.CountSQL, q.CountArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return fromDBModels(&cs), total, nil
}

func (r *Repository) FetchCustomerByID(ctx context.Context, id customer.ID) (*customer.Customer, error) {
	c := new(Customer)
	err := r.db.QueryRow(ctx, SelectCustomerByID, int64(id)).Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.BirthDate,
		&c.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(c), err
}

func (r *Repository) FetchCustomerByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	c := new(Customer)
	err := r.db.QueryRow(ctx, SelectCustomerByEmail, email).Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.BirthDate,
		&c.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(c), err
}

func (r *Repository) CreateCustomer(ctx context.Context, req customer.Customer) (*customer.Customer, error) {
	c := new(Customer)

	err := r.db.QueryRow(
		ctx,
		InsertCustomer,
		req.FirstName, req.LastName, req.Email, toDBPhone(req.Phone), req.BirthDate, req.Active,
	).Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.BirthDate,
		&c.Active,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, customer.ErrDuplicateEmail
		}
		return nil, err
	}

	return fromDBModel(c), err
}

func (r *Repository) UpdateCustomer(ctx context.Context, req customer.Customer) (bool, error) {
	tag, err := r.db.Exec(ctx, UpdateCustomerByID,
		req.FirstName, req.LastName, req.Email, toDBPhone(req.Phone), req.BirthDate, req.Active, int64(req.ID),
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return false, customer.ErrDuplicateEmail
		}
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *Repository) DeleteCustomer(ctx context.Context, id customer.ID) (bool, error) {
	tag, err := r.db.Exec(ctx, DeleteCustomerByID, int64(id))
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
