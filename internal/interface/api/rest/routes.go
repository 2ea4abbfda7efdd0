package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	RouteCustomers = RouteApiV1 + "/customers"
	RouteCustomer  = RouteCustomers + "/:customer_id"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
