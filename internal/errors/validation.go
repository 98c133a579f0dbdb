package errors

import "net/http"

const validationMessage = "Errores de validación"

var ErrInvalidJSON = &Exception{
	Message:    "Formato JSON inválido",
	StatusCode: http.StatusBadRequest,
}

func Validation(messages []string) *Exception {
	return &Exception{
		Message:    validationMessage,
		StatusCode: http.StatusBadRequest,
		Errors:     messages,
	}
}

// Forbidden is a validation failure caused by the requester's role or
// ownership; the accumulated messages are still reported.
func Forbidden(messages []string) *Exception {
	return &Exception{
		Message:    "No tienes permisos para realizar esta acción",
		StatusCode: http.StatusForbidden,
		Errors:     messages,
	}
}
