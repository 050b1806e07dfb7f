package httpx

import (
	"context"
	"errors"
	"net"

	"github.com/valyala/fasthttp"
)

// IsTimeout reports whether err means the round trip ran out of time, as
// opposed to failing outright.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, fasthttp.ErrTimeout) ||
		errors.Is(err, fasthttp.ErrDialTimeout) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
