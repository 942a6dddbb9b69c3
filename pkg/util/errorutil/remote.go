package errorutil

import "fmt"

// RemoteServiceError is a non-2xx answer from an external API.
type RemoteServiceError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *RemoteServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s responded %d: %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s responded %d", e.Service, e.StatusCode)
}

// NetworkError means the request never completed (DNS, timeout, connection reset).
type NetworkError struct {
	Service string
	Op      string
	URL     string
	Err     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s %s: %v", e.Service, e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// MalformedResponseError means the body was not JSON or lacked expected fields.
type MalformedResponseError struct {
	Service string
	Reason  string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s returned a malformed response: %s: %v", e.Service, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s returned a malformed response: %s", e.Service, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
