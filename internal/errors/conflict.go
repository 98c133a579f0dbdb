package errors

import "net/http"

// Conflict reports a refused state change. The explanation of what blocks
// it belongs in data; Errors stays reserved for input violations.
func Conflict(message string, data any) *Exception {
	return &Exception{
		Message:    message,
		StatusCode: http.StatusConflict,
		Data:       data,
	}
}
