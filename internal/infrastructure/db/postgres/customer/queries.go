package customer

import (
	"fmt"
	"strings"

	domain "customer-records-api/internal/domain/customer"
)

const selectColumns = "id, first_name, last_name, email, phone, birth_date, active"

const (
	SelectCustomerByID = `
		SELECT id, first_name, last_name, email, phone, birth_date, active
		FROM customers
		WHERE id = $1
	`
	SelectCustomerByEmail = `
		SELECT id, first_name, last_name, email, phone, birth_date, active
		FROM customers
		WHERE email = $1
	`
	InsertCustomer = `
		INSERT INTO customers (first_name, last_name, email, phone, birth_date, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING
		  id, first_name, last_name, email, phone, birth_date, active
	`
	UpdateCustomerByID = `
		UPDATE customers
		SET first_name = $1,
		    last_name = $2,
		    email = $3,
		    phone = $4,
		    birth_date = $5,
		    active = $6
		WHERE id = $7
	`
	DeleteCustomerByID = `DELETE FROM customers WHERE id = $1`
)

// sortColumns is the fixed allow-list for orderBy, keyed by the
// lowercased caller-facing field name. Anything else sorts by id.
var sortColumns = map[string]string{
	"id":        "id",
	"firstname": "first_name",
	"lastname":  "last_name",
	"email":     "email",
	"phone":     "phone",
	"birthdate": "birth_date",
	"active":    "active",
}

const searchFilter = " WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1"

type ListQuery struct {
	SQL       string
	Args      []any
	CountSQL  string
	CountArgs []any
	Page      int
	PageSize  int
}

// BuildListQuery turns the raw listing inputs into a bounded data query
// and its twin count query sharing the same filter predicate. The search
// term only ever travels as a bound parameter; the ORDER BY column and
// direction are resolved against fixed sets, never taken from the
// caller's text. Invalid inputs are clamped or defaulted, never rejected.
func BuildListQuery(p domain.ListParams) ListQuery {
	p = p.Normalized()

	var b, cb strings.Builder
	b.WriteString("SELECT " + selectColumns + " FROM customers")
	cb.WriteString("SELECT COUNT(id) FROM customers")

	var countArgs []any
	if term := strings.TrimSpace(p.SearchTerm); term != "" {
		b.WriteString(searchFilter)
		cb.WriteString(searchFilter)
		countArgs = append(countArgs, "%"+term+"%")
	}

	column, ok := sortColumns[strings.ToLower(strings.TrimSpace(p.OrderBy))]
	if !ok {
		column = "id"
	}
	direction := "ASC"
	if strings.EqualFold(strings.TrimSpace(p.OrderDirection), "desc") {
		direction = "DESC"
	}
	fmt.Fprintf(&b, " ORDER BY %s %s", column, direction)

	fmt.Fprintf(&b, " LIMIT $%d OFFSET $%d", len(countArgs)+1, len(countArgs)+2)
	args := make([]any, 0, len(countArgs)+2)
	args = append(args, countArgs...)
	args = append(args, p.PageSize, (p.PageNumber-1)*p.PageSize)

	return ListQuery{
		SQL:       b.String(),
		Args:      args,
		CountSQL:  cb.String(),
		CountArgs: countArgs,
		Page:      p.PageNumber,
		PageSize:  p.PageSize,
	}
}
