package httpx

import "net/http"

// Client performs a single HTTP round trip.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}
