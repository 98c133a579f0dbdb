package errors

import "net/http"

var ErrInternal = &Exception{
	Message:    "Error interno del servidor",
	StatusCode: http.StatusInternalServerError,
}

var ErrRateLimited = &Exception{
	Message:    "Demasiadas solicitudes, intenta de nuevo más tarde",
	StatusCode: http.StatusTooManyRequests,
}
