package errors

import "net/http"

var ErrRequesterRequired = &Exception{
	Message:    "El ID del usuario que realiza la petición es requerido",
	StatusCode: http.StatusBadRequest,
}

var ErrRequesterNotFound = &Exception{
	Message:    "El usuario que realiza la petición no existe",
	StatusCode: http.StatusNotFound,
}

var ErrInvalidCredentials = &Exception{
	Message:    "Credenciales inválidas",
	StatusCode: http.StatusUnauthorized,
}
