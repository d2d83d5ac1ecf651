package rest

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrRequest is matched by every RequestError.
	ErrRequest = errors.New("request returned non-success status")

	ErrDecode = errors.New("error decoding response body")
	ErrEncode = errors.New("error encoding request body")
)

// maxErrorBody limits the response body kept on a RequestError.
const maxErrorBody = 4096

// RequestError is returned when an API responds with a status other than 200 OK.
type RequestError struct {
	API        string
	Method     string
	URL        string
	StatusCode int
	Status     string
	// Body is the start of the response body, for diagnostics.
	Body []byte
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("%s: %s %s returned %s", e.API, e.Method, e.URL, e.Status)
	if len(e.Body) > 0 {
		msg += ": " + string(e.Body)
	}

	return msg
}

func (e *RequestError) Is(target error) bool {
	return target == ErrRequest
}
