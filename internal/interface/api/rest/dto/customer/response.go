package customer

type (
	Customer struct {
		ID        int64   `json:"id"`
		FirstName string  `json:"firstName"`
		LastName  string  `json:"lastName"`
		Email     string  `json:"email"`
		Phone     string  `json:"phone"`
		BirthDate *string `json:"birthDate"`
		Active    bool    `json:"active"`
	}
	Customers []Customer

	PaginatedResponse struct {
		Data        Customers `json:"data"`
		TotalItems  int       `json:"totalItems"`
		TotalPages  int       `json:"totalPages"`
		CurrentPage int       `json:"currentPage"`
		PageSize    int       `json:"pageSize"`
	}
)
