package errors

import "net/http"

var ErrInvalidUserID = &Exception{
	Message:    "ID de usuario inválido",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidProjectID = &Exception{
	Message:    "ID de proyecto inválido",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidTaskID = &Exception{
	Message:    "ID de tarea inválido",
	StatusCode: http.StatusBadRequest,
}

var ErrUserNotFound = &Exception{
	Message:    "Usuario no encontrado",
	StatusCode: http.StatusNotFound,
}

var ErrProjectNotFound = &Exception{
	Message:    "Proyecto no encontrado",
	StatusCode: http.StatusNotFound,
}

var ErrTaskNotFound = &Exception{
	Message:    "Tarea no encontrada",
	StatusCode: http.StatusNotFound,
}
