package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// RouteAPIPrefix is mounted in front of the API routes in production. The
	// development proxy strips it before forwarding.
	RouteAPIPrefix = "/api"

	// Token exchange
	RouteToken = "/token"

	// Operational routes (never prefixed)
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"

	// Client build, production only
	RouteIndex = "/"
)
