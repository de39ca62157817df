package whatsapp

import (
	"encoding/json"
	"errors"
	"fmt"
)

// GraphError is the structured `error` object the Cloud API returns with 4xx/5xx responses.
type GraphError struct {
	HTTPStatus   int    `json:"-"`
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode *int   `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id,omitempty"`
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("whatsapp api error %d (http %d): %s", e.Code, e.HTTPStatus, e.Message)
}

// Subcode reports the error_subcode when the provider sent a non-zero one.
func (e *GraphError) Subcode() (int, bool) {
	if e.ErrorSubcode == nil || *e.ErrorSubcode == 0 {
		return 0, false
	}
	return *e.ErrorSubcode, true
}

// UnexpectedResponseError is a non-2xx response whose body carries no recognizable error object.
type UnexpectedResponseError struct {
	StatusCode int
	Body       string
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// TransportError means no HTTP response was received (DNS, connect, timeout, cancelled context)
// or a 2xx body could not be read.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsProviderFailure reports whether err came from the provider answering with an error
// (as opposed to the call never completing).
func IsProviderFailure(err error) bool {
	var graphErr *GraphError
	var unexpected *UnexpectedResponseError
	return errors.As(err, &graphErr) || errors.As(err, &unexpected)
}

type errorEnvelope struct {
	Error json.RawMessage `json:"error"`
}

// parseFailure turns a non-2xx response into a *GraphError when the body has the known
// shape and into an *UnexpectedResponseError otherwise.
func parseFailure(status int, body []byte) error {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Error) > 0 && envelope.Error[0] == '{' {
		var graphErr GraphError
		if err := json.Unmarshal(envelope.Error, &graphErr); err == nil {
			graphErr.HTTPStatus = status
			return &graphErr
		}
	}

	return &UnexpectedResponseError{
		StatusCode: status,
		Body:       string(body),
	}
}
