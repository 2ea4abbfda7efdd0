package services

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"customer-records-api/internal/application/ports"
	domain "customer-records-api/internal/domain/customer"
	"customer-records-api/internal/infrastructure/mq"
	"customer-records-api/internal/interface/api/rest/dto/customer"
)

type CustomerService struct {
	customerRepository domain.Repository
	mq                 ports.RabbitMQ
	mCounter           *prometheus.CounterVec
}

func NewCustomerService(
	customerRepository domain.Repository,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.CustomerService {
	return &CustomerService{
		customerRepository: customerRepository,
		mq:                 mq,
		mCounter:           mCounter,
	}
}

// FindCustomers returns one page of matching customers plus the
// pagination metadata. Bad listing inputs are clamped, never rejected.
func (cs *CustomerService) FindCustomers(ctx context.Context, params domain.ListParams) (*domain.PaginatedResult, error) {
	params = params.Normalized()

	customers, total, err := cs.customerRepository.FetchCustomers(ctx, params)
	if err != nil {
		return nil, err
	}

	return &domain.PaginatedResult{
		Data:        customers,
		TotalItems:  total,
		TotalPages:  (total + params.PageSize - 1) / params.PageSize,
		CurrentPage: params.PageNumber,
		PageSize:    params.PageSize,
	}, nil
}

func (cs *CustomerService) FindCustomerByID(ctx context.Context, id domain.ID) (*domain.Customer, error) {
	c, err := cs.customerRepository.FetchCustomerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (cs *CustomerService) FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	c, err := cs.customerRepository.FetchCustomerByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (cs *CustomerService) CreateCustomer(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	c.ID = 0 // ids are store-assigned, a caller-supplied one is ignored

	if err := cs.validateCustomer(ctx, c); err != nil {
		return nil, err
	}

	cRet, err := cs.customerRepository.CreateCustomer(ctx, c)
	if err != nil {
		return nil, err
	}

	if cRet != nil {
		cs.publishEvent(http.MethodPost, *cRet)
	}

	cs.mCounter.WithLabelValues("customer_created_total").Inc()

	return cRet, nil
}

func (cs *CustomerService) UpdateCustomer(ctx context.Context, id domain.ID, c domain.Customer) error {
	if id != c.ID {
		return domain.ErrIDMismatch
	}

	existing, err := cs.customerRepository.FetchCustomerByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	if err = cs.validateCustomer(ctx, c); err != nil {
		return err
	}

	updated, err := cs.customerRepository.UpdateCustomer(ctx, c)
	if err != nil {
		return err
	}
	if !updated {
		// the row vanished between the existence check and the update
		return errors.New("customer update affected no rows")
	}

	cs.publishEvent(http.MethodPut, c)

	cs.mCounter.WithLabelValues("customer_updated_total").Inc()

	return nil
}

func (cs *CustomerService) DeleteCustomer(ctx context.Context, id domain.ID) error {
	deleted, err := cs.customerRepository.DeleteCustomer(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}

	cs.publishEvent(http.MethodDelete, domain.Customer{ID: id})

	cs.mCounter.WithLabelValues("customer_deleted_total").Inc()

	return nil
}

func (cs *CustomerService) publishEvent(method string, c domain.Customer) {
	cs.mq.GetInputChan() <- mq.Event{
		Id:         uuid.New(),
		TS:         time.Now(),
		Method:     method,
		CustomerID: strconv.FormatInt(int64(c.ID), 10),
		Payload:    customer.ToResponseCustomer(c),
	}
}
