package common

const (
	ServiceName     = "flow-ops-backend"
	ServiceTitle    = "Flow Ops Backend API"
	RequestIDHeader = "X-Request-ID"
)
