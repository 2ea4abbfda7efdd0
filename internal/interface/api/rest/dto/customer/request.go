package customer

type Request struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	BirthDate *string `json:"birthDate"`
	Active    bool    `json:"active"`
}
