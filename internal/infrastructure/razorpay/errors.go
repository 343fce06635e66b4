package razorpay

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error is a non-2xx answer from the provider, or a transport failure (StatusCode 0)
type Error struct {
	StatusCode  int
	Code        string
	Description string
	Field       string

	// unsent marks a transport failure before the request reached the provider
	unsent bool
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("razorpay: %s: %s", e.Code, e.Description)
	}
	if e.Field != "" {
		return fmt.Sprintf("razorpay: %d %s: %s (field %s)", e.StatusCode, e.Code, e.Description, e.Field)
	}
	return fmt.Sprintf("razorpay: %d %s: %s", e.StatusCode, e.Code, e.Description)
}

// Temporary reports whether the call may succeed when retried
func (e *Error) Temporary() bool {
	return e.StatusCode == 0 || e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// retryable reports whether a call under policy may be repeated after e.
// Unsafe calls are repeated only when the provider never saw them.
func (e *Error) retryable(policy retryPolicy) bool {
	if policy == retrySafe {
		return e.Temporary()
	}
	return e.StatusCode == http.StatusTooManyRequests || (e.StatusCode == 0 && e.unsent)
}

const (
	codeTransport = "TRANSPORT_ERROR"
	codeDecode    = "DECODE_ERROR"
)

type errorEnvelope struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
		Field       string `json:"field"`
	} `json:"error"`
}

func parseError(status int, body []byte) *Error {
	e := &Error{StatusCode: status}
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Code != "" {
		e.Code = env.Error.Code
		e.Description = env.Error.Description
		e.Field = env.Error.Field
		return e
	}
	e.Code = http.StatusText(status)
	e.Description = string(body)
	return e
}
