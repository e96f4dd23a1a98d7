package services

import (
	"fmt"

	"github.com/desertthunder/wayfarer/internal/shared"
)

// TransportKind discriminates transport-level failures.
type TransportKind int

const (
	TransportNetwork   TransportKind = iota // no response reached the client
	TransportMalformed                      // response body failed envelope validation
	TransportStatus                         // non-2xx status with a response
)

func (k TransportKind) String() string {
	switch k {
	case TransportNetwork:
		return "network"
	case TransportMalformed:
		return "malformed"
	case TransportStatus:
		return "status"
	default:
		return ""
	}
}

// TransportError reports a transport-level failure: the request never
// produced a usable envelope.
type TransportError struct {
	Kind   TransportKind
	Status int    // HTTP status for TransportStatus, zero otherwise
	Detail string // structured validation messages when the backend supplied them
	Err    error  // underlying cause for TransportNetwork / TransportMalformed
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case TransportNetwork:
		return fmt.Sprintf("network failure: %v", e.Err)
	case TransportMalformed:
		return fmt.Sprintf("malformed response: %v", e.Err)
	default:
		if e.Detail != "" {
			return fmt.Sprintf("request failed (%d): %s", e.Status, e.Detail)
		}
		return fmt.Sprintf("request failed (%d)", e.Status)
	}
}

func (e *TransportError) Unwrap() error {
	switch e.Kind {
	case TransportNetwork:
		return shared.ErrNetwork
	case TransportMalformed:
		return shared.ErrMalformedResponse
	default:
		return shared.ErrAPIRequest
	}
}

// AuthError reports an authentication or authorization failure.
//
// Forbidden leaves the session intact and only denies the operation;
// unauthenticated destroys the session.
type AuthError struct {
	Forbidden bool
}

func (e *AuthError) Error() string {
	if e.Forbidden {
		return "permission denied"
	}
	return "authentication failed"
}

func (e *AuthError) Unwrap() error {
	if e.Forbidden {
		return shared.ErrForbidden
	}
	return shared.ErrNotAuthenticated
}

// BusinessError reports a 2xx response whose envelope carried success=false.
// The message passes through verbatim from the backend.
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string {
	if e.Message == "" {
		return "request rejected"
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return shared.ErrRequestRejected
}
