package errors

import "net/http"

var ErrTaskAccessDenied = &Exception{
	Message:    "No tienes permisos para ver esta tarea",
	StatusCode: http.StatusForbidden,
}

var ErrProjectAccessDenied = &Exception{
	Message:    "No tienes permisos para ver este proyecto",
	StatusCode: http.StatusForbidden,
}

var ErrProjectTasksAccessDenied = &Exception{
	Message:    "No tienes permisos para ver las tareas de este proyecto",
	StatusCode: http.StatusForbidden,
}
