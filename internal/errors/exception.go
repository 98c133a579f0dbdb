package errors

import (
	"errors"
	"net/http"
)

// Exception is an error that knows how it should be reported to the client.
// Errors lists individual validation messages; Data carries structured
// details such as the blocking records of a conflict.
type Exception struct {
	Message    string
	StatusCode int
	Errors     []string
	Data       any
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func As(err error) (*Exception, bool) {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
