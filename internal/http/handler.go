package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oscar503sv/gestion-de-proyectos/internal/constants"
	apperrors "github.com/oscar503sv/gestion-de-proyectos/internal/errors"
	"github.com/oscar503sv/gestion-de-proyectos/internal/http/validators"
	"github.com/oscar503sv/gestion-de-proyectos/internal/services"
)

type Handler struct {
	userService      *services.UserService
	projectService   *services.ProjectService
	taskService      *services.TaskService
	dashboardService *services.DashboardService
	authService      *services.AuthService
}

func NewHandler(
	userService *services.UserService,
	projectService *services.ProjectService,
	taskService *services.TaskService,
	dashboardService *services.DashboardService,
	authService *services.AuthService,
) *Handler {
	return &Handler{
		userService:      userService,
		projectService:   projectService,
		taskService:      taskService,
		dashboardService: dashboardService,
		authService:      authService,
	}
}

// queryRequester reads requestedBy for GET routes. An unusable value becomes
// zero, which the services reject as missing.
func queryRequester(c echo.Context) uint {
	id, _ := validators.ParseID(c.QueryParam("requestedBy"))
	return id
}

// bodyRequester parses the JSON body of a write and the requester in it.
func bodyRequester(c echo.Context) (validators.Body, uint, error) {
	b, err := validators.ParseBody(c.Request().Body)
	if err != nil {
		return nil, 0, err
	}
	id, _ := validators.RequesterID(b, c.QueryParam("requestedBy"))
	return b, id, nil
}

func pathID(c echo.Context, invalid error) (uint, error) {
	id, ok := validators.ParseID(c.Param("id"))
	if !ok {
		return 0, invalid
	}
	return id, nil
}

func (h *Handler) Login(c echo.Context) error {
	b, err := validators.ParseBody(c.Request().Body)
	if err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), b)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Autenticación exitosa", res)
}

func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context(), queryRequester(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Usuarios obtenidos exitosamente", users)
}

func (h *Handler) GetUser(c echo.Context) error {
	id, err := pathID(c, apperrors.ErrInvalidUserID)
	if err != nil {
		return err
	}

	user, err := h.userService.GetUser(c.Request().Context(), queryRequester(c), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Usuario obtenido exitosamente", user)
}

func (h *Handler) CreateUser(c echo.Context) error {
	b, err := validators.ParseBody(c.Request().Body)
	if err != nil {
		return err
	}

	user, err := h.userService.RegisterUser(c.Request().Context(), b)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Usuario creado exitosamente", user)
}

func (h *Handler) UpdateUser(c echo.Context) error {
	id, err := pathID(c, apperrors.ErrInvalidUserID)
	if err != nil {
		return err
	}
	b, actor, err := bodyRequester(c)
	if err != nil {
		return err
	}

	user, err := h.userService.UpdateUser(c.Request().Context(), actor, id, b)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Usuario actualizado exitosamente", user)
}

func (h *Handler) DeleteUser(c echo.Context) error {
	id, err := pathID(c, apperrors.ErrInvalidUserID)
	if err != nil {
		return err
	}
	_, actor, err := bodyRequester(c)
	if err != nil {
		return err
	}

	deleted, err := h.userService.DeleteUser(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Usuario eliminado exitosamente", deleted)
}

func (h *Handler) ListProjects(c echo.Context) error {
	projects, err := h.projectService.ListProjects(c.Request().Context(), queryRequester(c))
	if err != nil {
		return err
	}

	suffix := "s"
	if len(projects) == 1 {
		suffix = ""
	}
	msg := fmt.Sprintf("Proyectos obtenidos exitosamente (%d proyecto%s)", len(projects), suffix)
	return respond(c, http.StatusOK, msg, projects)
}

func (h *Handler) GetProject(c echo.Context) error {
	id, err := pathID(c, apperrors.ErrInvalidProjectID)
	if err != nil {
		return err
	}

	project, err := h.projectService.GetProject(c.Request().Context(), queryRequester(c), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Proyecto obtenido exitosamente", project)
}

func (h *Handler) CreateProject(c echo.Context) error {
	b, actor, err := bodyRequester(c)
	if err != nil {
		return err
	}

	project, err := h.projectService.CreateProject(c.Request().Context(), actor, b)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Proyecto creado exitosamente", project)
}

func (h *Handler) UpdateProject(c echo.Context) error {
	id, err := pathID(c, apperrors.ErrInvalidProjectID)
	if err != nil {
		return err
	}
	b, actor, err := bodyRequester(c)
	if err != nil {
		return err
	}

	project, err := h.projectService.UpdateProject(c.Request().Context(), actor, id, b)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Proyecto actualizado exitosamente", project)
}

func (h *Handler) DeleteProject(c echo.Context) error {
	id, err := pathID(c, apperrors.ErrInvalidProjectID)
	if err != nil {
		return err
	}
	_, actor, err := bodyRequester(c)
	if err != nil {
		return err
	}

	deleted, err := h.projectService.DeleteProject(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Proyecto eliminado exitosamente", deleted)
}

func (h *Handler) ProjectTasks(c echo.Context) error {
	id, err := pathID(c, apperrors.ErrInvalidProjectID)
	if err != nil {
		return err
	}

	var filter services.TaskFilter
	if s := c.QueryParam("status"); s != "" {
		status := constants.TaskStatus(s)
		filter.Status = &status
	}
	if p := c.QueryParam("priority"); p != "" {
		priority := constants.Priority(p)
		filter.Priority = &priority
	}
	if a, ok := validators.ParseID(c.QueryParam("assignedTo")); ok {
		filter.AssignedTo = &a
	}

	res, err := h.projectService.ProjectTasks(c.Request().Context(), queryRequester(c), id, filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Tareas del proyecto obtenidas exitosamente", res)
}

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.taskService.ListTasks(c.Request().Context(), queryRequester(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Tareas obtenidas exitosamente", tasks)
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := pathID(c, apperrors.ErrInvalidTaskID)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), queryRequester(c), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Tarea obtenida exitosamente", task)
}

func (h *Handler) CreateTask(c echo.Context) error {
	b, actor, err := bodyRequester(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), actor, b)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Tarea creada exitosamente", task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := pathID(c, apperrors.ErrInvalidTaskID)
	if err != nil {
		return err
	}
	b, actor, err := bodyRequester(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), actor, id, b)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Tarea actualizada exitosamente", task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := pathID(c, apperrors.ErrInvalidTaskID)
	if err != nil {
		return err
	}
	_, actor, err := bodyRequester(c)
	if err != nil {
		return err
	}

	deleted, err := h.taskService.DeleteTask(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Tarea eliminada exitosamente", deleted)
}

func (h *Handler) Dashboard(c echo.Context) error {
	d, err := h.dashboardService.Dashboard(c.Request().Context(), queryRequester(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Estadísticas del dashboard obtenidas exitosamente", d)
}

func (h *Handler) Health(c echo.Context) error {
	return respond(c, http.StatusOK, "OK", nil)
}
