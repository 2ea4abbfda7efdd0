package customer

import (
	"errors"
	"time"

	domain "customer-records-api/internal/domain/customer"
)

const birthDateLayout = "2006-01-02"

func ToResponseCustomer(cDomain domain.Customer) Customer {
	var c = Customer{
		ID:        int64(cDomain.ID),
		FirstName: cDomain.FirstName,
		LastName:  cDomain.LastName,
		Email:     cDomain.Email,
		Phone:     cDomain.Phone,
		Active:    cDomain.Active,
	}
	if cDomain.BirthDate != nil {
		bd := cDomain.BirthDate.Format(birthDateLayout)
		c.BirthDate = &bd
	}

	return c
}

func ToResponseCustomers(csDomain domain.Customers) Customers {
	cs := make(Customers, len(csDomain))
	for idx, c := range csDomain {
		cs[idx] = ToResponseCustomer(*c)
	}

	return cs
}

func ToPaginatedResponse(res domain.PaginatedResult) PaginatedResponse {
	return PaginatedResponse{
		Data:        ToResponseCustomers(res.Data),
		TotalItems:  res.TotalItems,
		TotalPages:  res.TotalPages,
		CurrentPage: res.CurrentPage,
		PageSize:    res.PageSize,
	}
}

func ToDomainCustomer(cRequest Request) (domain.Customer, error) {
	var c = domain.Customer{
		ID:        domain.ID(cRequest.ID),
		FirstName: cRequest.FirstName,
		LastName:  cRequest.LastName,
		Email:     cRequest.Email,
		Phone:     cRequest.Phone,
		Active:    cRequest.Active,
	}
	if cRequest.BirthDate != nil && *cRequest.BirthDate != "" {
		d, err := time.Parse(birthDateLayout, *cRequest.BirthDate)
		if err != nil {
			return domain.Customer{}, errors.New("invalid birthDate format, want YYYY-MM-DD")
		}
		c.BirthDate = &d
	}

	return c, nil
}
