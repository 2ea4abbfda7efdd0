package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "customer-records-api/internal/domain/customer"
	"customer-records-api/internal/infrastructure/mq"
)

type FakeRepository struct {
	FetchCustomersFunc       func(ctx context.Context, params domain.ListParams) (domain.Customers, int, error)
	FetchCustomerByIDFunc    func(ctx context.Context, id domain.ID) (*domain.Customer, error)
	FetchCustomerByEmailFunc func(ctx context.Context, email string) (*domain.Customer, error)
	CreateCustomerFunc       func(ctx context.Context, req domain.Customer) (*domain.Customer, error)
	UpdateCustomerFunc       func(ctx context.Context, req domain.Customer) (bool, error)
	DeleteCustomerFunc       func(ctx context.Context, id domain.ID) (bool, error)
}

func (f *FakeRepository) FetchCustomers(ctx context.Context, params domain.ListParams) (domain.Customers, int, error) {
	if f.FetchCustomersFunc == nil {
		return nil, 0, errors.New("not used")
	}
	return f.FetchCustomersFunc(ctx, params)
}
func (f *FakeRepository) FetchCustomerByID(ctx context.Context, id domain.ID) (*domain.Customer, error) {
	if f.FetchCustomerByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchCustomerByIDFunc(ctx, id)
}
func (f *FakeRepository) FetchCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	if f.FetchCustomerByEmailFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchCustomerByEmailFunc(ctx, email)
}
func (f *FakeRepository) CreateCustomer(ctx context.Context, req domain.Customer) (*domain.Customer, error) {
	if f.CreateCustomerFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateCustomerFunc(ctx, req)
}
func (f *FakeRepository) UpdateCustomer(ctx context.Context, req domain.Customer) (bool, error) {
	if f.UpdateCustomerFunc == nil {
		return false, errors.New("not used")
	}
	return f.UpdateCustomerFunc(ctx, req)
}
func (f *FakeRepository) DeleteCustomer(ctx context.Context, id domain.ID) (bool, error) {
	if f.DeleteCustomerFunc == nil {
		return false, errors.New("not used")
	}
	return f.DeleteCustomerFunc(ctx, id)
}

type FakeBroker struct {
	in chan mq.Event
}

func (f *FakeBroker) Connect(ctx context.Context, dsn string) error { return nil }
func (f *FakeBroker) Init() error                                   { return nil }
func (f *FakeBroker) PublisherWorker(ctx context.Context)           {}
func (f *FakeBroker) GetInputChan() chan mq.Event                   { return f.in }
func (f *FakeBroker) GetConn() *amqp091.Connection                  { return nil }

func newTestService(repo domain.Repository) (*CustomerService, *FakeBroker) {
	broker := &FakeBroker{in: make(chan mq.Event, 8)}
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "test_general_counters"},
		[]string{"result"},
	)

	return &CustomerService{
		customerRepository: repo,
		mq:                 broker,
		mCounter:           counter,
	}, broker
}

func noCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return nil, nil
}

func validCustomer() domain.Customer {
	return domain.Customer{
		FirstName: "Ana",
		LastName:  "Gomez",
		Email:     "ana@x.com",
		Phone:     "34911222333",
		Active:    true,
	}
}

func TestCustomerService_FindCustomers_Pagination(t *testing.T) {
	tests := []struct {
		name           string
		params         domain.ListParams
		total          int
		wantPage       int
		wantSize       int
		wantTotalPages int
	}{
		{"full pages", domain.ListParams{PageNumber: 1, PageSize: 10}, 30, 1, 10, 3},
		{"partial last page", domain.ListParams{PageNumber: 2, PageSize: 10}, 25, 2, 10, 3},
		{"no matches no pages", domain.ListParams{PageNumber: 1, PageSize: 10}, 0, 1, 10, 0},
		{"clamped inputs", domain.ListParams{PageNumber: -4, PageSize: 0}, 5, 1, 10, 1},
		{"page size one", domain.ListParams{PageNumber: 1, PageSize: 1}, 7, 1, 1, 7},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(&FakeRepository{
				FetchCustomersFunc: func(ctx context.Context, params domain.ListParams) (domain.Customers, int, error) {
					assert.GreaterOrEqual(t, params.PageNumber, 1)
					assert.GreaterOrEqual(t, params.PageSize, 1)
					return domain.Customers{}, tt.total, nil
				},
			})

			res, err := svc.FindCustomers(context.Background(), tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.total, res.TotalItems)
			assert.Equal(t, tt.wantTotalPages, res.TotalPages)
			assert.Equal(t, tt.wantPage, res.CurrentPage)
			assert.Equal(t, tt.wantSize, res.PageSize)
		})
	}
}

func TestCustomerService_FindCustomers_StorageError(t *testing.T) {
	svc, _ := newTestService(&FakeRepository{
		FetchCustomersFunc: func(ctx context.Context, params domain.ListParams) (domain.Customers, int, error) {
			return nil, 0, errors.New("db down")
		},
	})

	res, err := svc.FindCustomers(context.Background(), domain.ListParams{})
	require.Error(t, err)
	assert.Nil(t, res)
}

func TestCustomerService_CreateCustomer_ValidationOrder(t *testing.T) {
	tomorrow := time.Now().AddDate(0, 0, 1)

	tests := []struct {
		name    string
		mutate  func(c *domain.Customer)
		byEmail func(ctx context.Context, email string) (*domain.Customer, error)
		wantErr string
	}{
		{
			name: "missing first name reported first",
			mutate: func(c *domain.Customer) {
				c.FirstName = "  "
				c.LastName = ""
				c.Email = ""
			},
			wantErr: "firstName is required",
		},
		{
			name: "missing last name before email",
			mutate: func(c *domain.Customer) {
				c.LastName = ""
				c.Email = ""
			},
			wantErr: "lastName is required",
		},
		{
			name:    "missing email",
			mutate:  func(c *domain.Customer) { c.Email = " " },
			wantErr: "email is required",
		},
		{
			name:    "email with whitespace",
			mutate:  func(c *domain.Customer) { c.Email = "ana @x.com" },
			wantErr: domain.ErrInvalidEmail.Error(),
		},
		{
			name:    "email without dot after at",
			mutate:  func(c *domain.Customer) { c.Email = "ana@localhost" },
			wantErr: domain.ErrInvalidEmail.Error(),
		},
		{
			name:   "duplicate email",
			mutate: func(c *domain.Customer) {},
			byEmail: func(ctx context.Context, email string) (*domain.Customer, error) {
				return &domain.Customer{ID: 99, Email: email}, nil
			},
			wantErr: domain.ErrDuplicateEmail.Error(),
		},
		{
			name:    "future birth date",
			mutate:  func(c *domain.Customer) { c.BirthDate = &tomorrow },
			wantErr: domain.ErrFutureBirthDate.Error(),
		},
		{
			name:    "phone too short",
			mutate:  func(c *domain.Customer) { c.Phone = "12345" },
			wantErr: domain.ErrInvalidPhone.Error(),
		},
		{
			name:    "phone with letters",
			mutate:  func(c *domain.Customer) { c.Phone = "34911abc333" },
			wantErr: domain.ErrInvalidPhone.Error(),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			byEmail := tt.byEmail
			if byEmail == nil {
				byEmail = noCustomerByEmail
			}
			inserted := false
			svc, _ := newTestService(&FakeRepository{
				FetchCustomerByEmailFunc: byEmail,
				CreateCustomerFunc: func(ctx context.Context, req domain.Customer) (*domain.Customer, error) {
					inserted = true
					return &req, nil
				},
			})

			c := validCustomer()
			tt.mutate(&c)

			_, err := svc.CreateCustomer(context.Background(), c)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.False(t, inserted, "no insert may happen after a validation failure")
		})
	}
}

func TestCustomerService_CreateCustomer_Success(t *testing.T) {
	svc, broker := newTestService(&FakeRepository{
		FetchCustomerByEmailFunc: noCustomerByEmail,
		CreateCustomerFunc: func(ctx context.Context, req domain.Customer) (*domain.Customer, error) {
			req.ID = 42
			return &req, nil
		},
	})

	c, err := svc.CreateCustomer(context.Background(), validCustomer())
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, domain.ID(42), c.ID)

	select {
	case e := <-broker.in:
		assert.Equal(t, "POST", e.Method)
		assert.Equal(t, "42", e.CustomerID)
		assert.Equal(t, "ana@x.com", e.Payload.Email)
	default:
		t.Fatal("expected a created event on the broker channel")
	}
}

func TestCustomerService_CreateCustomer_IgnoresCallerID(t *testing.T) {
	svc, _ := newTestService(&FakeRepository{
		FetchCustomerByEmailFunc: noCustomerByEmail,
		CreateCustomerFunc: func(ctx context.Context, req domain.Customer) (*domain.Customer, error) {
			assert.Equal(t, domain.ID(0), req.ID)
			req.ID = 1
			return &req, nil
		},
	})

	c := validCustomer()
	c.ID = 777

	created, err := svc.CreateCustomer(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, domain.ID(1), created.ID)
}

func TestCustomerService_UpdateCustomer(t *testing.T) {
	existing := func(ctx context.Context, id domain.ID) (*domain.Customer, error) {
		c := validCustomer()
		c.ID = id
		return &c, nil
	}

	t.Run("id mismatch beats everything, no lookup no mutation", func(t *testing.T) {
		touched := false
		svc, _ := newTestService(&FakeRepository{
			FetchCustomerByIDFunc: func(ctx context.Context, id domain.ID) (*domain.Customer, error) {
				touched = true
				return nil, nil
			},
			UpdateCustomerFunc: func(ctx context.Context, req domain.Customer) (bool, error) {
				touched = true
				return true, nil
			},
		})

		c := validCustomer()
		c.ID = 6

		err := svc.UpdateCustomer(context.Background(), 5, c)
		require.ErrorIs(t, err, domain.ErrIDMismatch)
		assert.False(t, touched)
	})

	t.Run("missing record", func(t *testing.T) {
		svc, _ := newTestService(&FakeRepository{
			FetchCustomerByIDFunc: func(ctx context.Context, id domain.ID) (*domain.Customer, error) {
				return nil, nil
			},
		})

		c := validCustomer()
		c.ID = 5

		err := svc.UpdateCustomer(context.Background(), 5, c)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("own email is not a duplicate", func(t *testing.T) {
		svc, _ := newTestService(&FakeRepository{
			FetchCustomerByIDFunc: existing,
			FetchCustomerByEmailFunc: func(ctx context.Context, email string) (*domain.Customer, error) {
				return &domain.Customer{ID: 5, Email: email}, nil
			},
			UpdateCustomerFunc: func(ctx context.Context, req domain.Customer) (bool, error) {
				return true, nil
			},
		})

		c := validCustomer()
		c.ID = 5

		require.NoError(t, svc.UpdateCustomer(context.Background(), 5, c))
	})

	t.Run("another customer's email is a duplicate", func(t *testing.T) {
		svc, _ := newTestService(&FakeRepository{
			FetchCustomerByIDFunc: existing,
			FetchCustomerByEmailFunc: func(ctx context.Context, email string) (*domain.Customer, error) {
				return &domain.Customer{ID: 99, Email: email}, nil
			},
		})

		c := validCustomer()
		c.ID = 5

		err := svc.UpdateCustomer(context.Background(), 5, c)
		require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})

	t.Run("zero rows after existence check is a storage failure", func(t *testing.T) {
		svc, _ := newTestService(&FakeRepository{
			FetchCustomerByIDFunc:    existing,
			FetchCustomerByEmailFunc: noCustomerByEmail,
			UpdateCustomerFunc: func(ctx context.Context, req domain.Customer) (bool, error) {
				return false, nil
			},
		})

		c := validCustomer()
		c.ID = 5

		err := svc.UpdateCustomer(context.Background(), 5, c)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("success publishes an update event", func(t *testing.T) {
		svc, broker := newTestService(&FakeRepository{
			FetchCustomerByIDFunc:    existing,
			FetchCustomerByEmailFunc: noCustomerByEmail,
			UpdateCustomerFunc: func(ctx context.Context, req domain.Customer) (bool, error) {
				return true, nil
			},
		})

		c := validCustomer()
		c.ID = 5

		require.NoError(t, svc.UpdateCustomer(context.Background(), 5, c))

		select {
		case e := <-broker.in:
			assert.Equal(t, "PUT", e.Method)
			assert.Equal(t, "5", e.CustomerID)
		default:
			t.Fatal("expected an updated event on the broker channel")
		}
	})
}

func TestCustomerService_DeleteCustomer(t *testing.T) {
	t.Run("delete is permanent, a second try is not found", func(t *testing.T) {
		gone := false
		svc, _ := newTestService(&FakeRepository{
			DeleteCustomerFunc: func(ctx context.Context, id domain.ID) (bool, error) {
				if gone {
					return false, nil
				}
				gone = true
				return true, nil
			},
		})

		require.NoError(t, svc.DeleteCustomer(context.Background(), 7))
		require.ErrorIs(t, svc.DeleteCustomer(context.Background(), 7), domain.ErrNotFound)
		require.ErrorIs(t, svc.DeleteCustomer(context.Background(), 7), domain.ErrNotFound)
	})

	t.Run("storage error propagates", func(t *testing.T) {
		svc, _ := newTestService(&FakeRepository{
			DeleteCustomerFunc: func(ctx context.Context, id domain.ID) (bool, error) {
				return false, errors.New("db down")
			},
		})

		err := svc.DeleteCustomer(context.Background(), 7)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})
}
