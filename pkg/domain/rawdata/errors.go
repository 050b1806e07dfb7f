package rawdata

import (
	"errors"
	"fmt"
)

var ErrTokenNotConfigured = errors.New("FLOW_TOKEN not configured")

// ErrorKind classifies why a Flow API call did not produce a payload.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindConfiguration
	KindUpstreamStatus
	KindTimeout
	KindNetwork
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindUpstreamStatus:
		return "upstream_status"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	default:
		return "internal"
	}
}

// Error is the only error type returned by Flow API clients.
type Error struct {
	Kind ErrorKind
	// StatusCode and Body are set for KindUpstreamStatus.
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUpstreamStatus:
		return fmt.Sprintf("flow api returned status %d: %s", e.StatusCode, e.Body)
	default:
		if e.Err == nil {
			return e.Kind.String()
		}
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewConfigurationError(err error) error {
	return &Error{Kind: KindConfiguration, Err: err}
}

func NewUpstreamStatusError(statusCode int, body string) error {
	return &Error{Kind: KindUpstreamStatus, StatusCode: statusCode, Body: body}
}

func NewTimeoutError(err error) error {
	return &Error{Kind: KindTimeout, Err: err}
}

func NewNetworkError(err error) error {
	return &Error{Kind: KindNetwork, Err: err}
}

func NewInternalError(err error) error {
	return &Error{Kind: KindInternal, Err: err}
}

// KindOf returns the kind carried by err, or KindInternal when err is not a
// *Error.
func KindOf(err error) ErrorKind {
	var rdErr *Error
	if errors.As(err, &rdErr) {
		return rdErr.Kind
	}
	return KindInternal
}
