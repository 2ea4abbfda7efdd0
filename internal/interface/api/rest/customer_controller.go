package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"customer-records-api/internal/application/ports"
	domain "customer-records-api/internal/domain/customer"
	"customer-records-api/internal/interface/api/rest/dto/customer"
	"customer-records-api/internal/interface/api/rest/validator"
)

type CustomerController struct {
	customerService ports.CustomerService
	logger          *zap.Logger
}

func NewCustomerController(
	r *gin.Engine,
	customerService ports.CustomerService,
	logger *zap.Logger,
) *CustomerController {
	cc := &CustomerController{
		customerService: customerService,
		logger:          logger,
	}

	r.GET(RouteCustomers, cc.GetCustomersHandler)
	r.GET(RouteCustomer, cc.GetCustomerHandler)
	r.POST(RouteCustomers, cc.CreateCustomerHandler)
	r.PUT(RouteCustomer, cc.UpdateCustomerHandler)
	r.DELETE(RouteCustomer, cc.DeleteCustomerHandler)

	return cc
}

func (cc *CustomerController) GetCustomersHandler(c *gin.Context) {
	params := domain.ListParams{
		SearchTerm:     c.Query("searchTerm"),
		OrderBy:        c.Query("orderBy"),
		OrderDirection: c.Query("orderDirection"),
		PageNumber:     validator.IntOrDefault(c.Query("pageNumber"), 1),
		PageSize:       validator.IntOrDefault(c.Query("pageSize"), domain.DefaultPageSize),
	}

	res, err := cc.customerService.FindCustomers(c.Request.Context(), params)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get customers"},
		)
		cc.logger.Error("FindCustomers() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, customer.ToPaginatedResponse(*res))
}

func (cc *CustomerController) GetCustomerHandler(c *gin.Context) {
	ok, id := validator.IsCustomerID(c.Param("customer_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "customer_id must be a positive integer"},
		)
		return
	}

	cRet, err := cc.customerService.FindCustomerByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a customer"},
		)
		cc.logger.Error("FindCustomerByID() error", zap.Error(err))
		return
	}

	if cRet == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "customer not found"},
		)
		return
	}

	c.JSON(http.StatusOK, customer.ToResponseCustomer(*cRet))
}

func (cc *CustomerController) CreateCustomerHandler(c *gin.Context) {
	var req customer.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	cDomain, err := customer.ToDomainCustomer(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	cRet, err := cc.customerService.CreateCustomer(c.Request.Context(), cDomain)
	if err != nil {
		cc.writeError(c, "CreateCustomer()", "failed to create a customer", err)
		return
	}

	c.Header("Location", RouteCustomers+"/"+strconv.FormatInt(int64(cRet.ID), 10))
	c.JSON(http.StatusCreated, customer.ToResponseCustomer(*cRet))
}

func (cc *CustomerController) UpdateCustomerHandler(c *gin.Context) {
	ok, id := validator.IsCustomerID(c.Param("customer_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "customer_id must be a positive integer"},
		)
		return
	}

	var req customer.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	cDomain, err := customer.ToDomainCustomer(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err = cc.customerService.UpdateCustomer(c.Request.Context(), id, cDomain); err != nil {
		cc.writeError(c, "UpdateCustomer()", "failed to update a customer", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (cc *CustomerController) DeleteCustomerHandler(c *gin.Context) {
	ok, id := validator.IsCustomerID(c.Param("customer_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "customer_id must be a positive integer"},
		)
		return
	}

	if err := cc.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		cc.writeError(c, "DeleteCustomer()", "failed to delete a customer", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// writeError maps the service's typed outcomes onto statuses: validation
// failures 400, duplicate email 409, missing record 404. Anything else is
// a storage failure, logged here and reported as an opaque 500.
func (cc *CustomerController) writeError(c *gin.Context, op, fallback string, err error) {
	var missing *domain.MissingFieldError

	switch {
	case errors.As(err, &missing),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidPhone),
		errors.Is(err, domain.ErrFutureBirthDate),
		errors.Is(err, domain.ErrIDMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
		cc.logger.Error(op+" error", zap.Error(err))
	}
}
