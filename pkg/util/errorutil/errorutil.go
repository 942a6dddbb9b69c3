package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewUnavailable(message string) error {
	return NewDomainError("SERVICE_UNAVAILABLE", message, http.StatusServiceUnavailable, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic and remote errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	var remoteErr *RemoteServiceError
	if errors.As(err, &remoteErr) {
		if remoteErr.StatusCode == http.StatusNotFound {
			return &DomainError{
				Code:       "NOT_FOUND",
				Message:    remoteErr.Error(),
				HTTPStatus: http.StatusNotFound,
				Err:        err,
			}
		}
		return &DomainError{
			Code:       "REMOTE_SERVICE_ERROR",
			Message:    remoteErr.Error(),
			HTTPStatus: http.StatusBadGateway,
			Details:    map[string]any{"service": remoteErr.Service, "upstream_status": remoteErr.StatusCode},
			Err:        err,
		}
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return &DomainError{
			Code:       "NETWORK_ERROR",
			Message:    netErr.Error(),
			HTTPStatus: http.StatusGatewayTimeout,
			Details:    map[string]any{"service": netErr.Service},
			Err:        err,
		}
	}

	var malformedErr *MalformedResponseError
	if errors.As(err, &malformedErr) {
		return &DomainError{
			Code:       "MALFORMED_RESPONSE",
			Message:    malformedErr.Error(),
			HTTPStatus: http.StatusBadGateway,
			Details:    map[string]any{"service": malformedErr.Service},
			Err:        err,
		}
	}

	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
