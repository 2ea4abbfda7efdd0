package customer

import (
	domain "customer-records-api/internal/domain/customer"
)

func fromDBModel(model *Customer) *domain.Customer {
	var c = &domain.Customer{
		ID:        domain.ID(model.ID),
		FirstName: model.FirstName,
		LastName:  model.LastName,
		Email:     model.Email,
		BirthDate: model.BirthDate,
		Active:    model.Active,
	}
	if model.Phone != nil {
		c.Phone = *model.Phone
	}

	return c
}

func fromDBModels(models *Customers) domain.Customers {
	cs := make(domain.Customers, len(*models))
	for idx, c := range *models {
		cs[idx] = fromDBModel(c)
	}

	return cs
}

func toDBPhone(phone string) *string {
	if phone == "" {
		return nil
	}
	return &phone
}
