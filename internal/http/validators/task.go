package validators

import (
	"time"

	"github.com/oscar503sv/gestion-de-proyectos/internal/constants"
	repository "github.com/oscar503sv/gestion-de-proyectos/internal/repositories"
)

// TaskFields holds the validated values; nil means the field was not sent.
type TaskFields struct {
	Title       *string
	Description *string
	Status      *constants.TaskStatus
	Priority    *constants.Priority
	ProjectID   *uint
	AssignedTo  *uint
	DueDate     *string
}

var (
	taskTitle = TextRule{
		Min: 3, Max: 100,
		Required: "El título de la tarea es requerido",
		TooShort: "El título de la tarea debe tener al menos 3 caracteres",
		TooLong:  "El título de la tarea no puede exceder 100 caracteres",
	}
	taskDescription = TextRule{
		Min: 10, Max: 500,
		Required: "La descripción de la tarea es requerida",
		TooShort: "La descripción debe tener al menos 10 caracteres",
		TooLong:  "La descripción no puede exceder 500 caracteres",
	}
	taskDueDate = DateRule{
		Required: "La fecha de vencimiento es requerida",
		Format:   "La fecha de vencimiento debe estar en formato ISO8601",
		Past:     "La fecha de vencimiento no puede ser anterior a hoy",
	}
)

const (
	taskStatusLabel   = "El estado debe ser uno de"
	taskPriorityLabel = "La prioridad debe ser una de"
)

func TaskCreate(c *Collector, r repository.Reader, b Body, now time.Time) (TaskFields, error) {
	var f TaskFields

	if title, ok := c.Text(b, "title", taskTitle); ok {
		f.Title = &title
	}
	if desc, ok := c.Text(b, "description", taskDescription); ok {
		f.Description = &desc
	}

	var err error
	if f.ProjectID, err = taskProject(c, r, b, "El ID del proyecto es requerido y debe ser un número"); err != nil {
		return f, err
	}
	if f.AssignedTo, err = taskAssignee(c, r, b, "El ID del usuario asignado es requerido y debe ser un número"); err != nil {
		return f, err
	}

	if due, ok := c.Date(b, "dueDate", taskDueDate, now); ok {
		f.DueDate = &due
	}

	if !b.Blank("priority") {
		if p, ok := OneOf(c, b, "priority", constants.Priorities, taskPriorityLabel); ok {
			f.Priority = &p
		}
	}
	if !b.Blank("status") {
		if s, ok := OneOf(c, b, "status", constants.TaskStatuses, taskStatusLabel); ok {
			f.Status = &s
		}
	}

	return f, nil
}

// TaskUpdate validates the fields present in b.
func TaskUpdate(c *Collector, r repository.Reader, b Body, now time.Time) (TaskFields, error) {
	var f TaskFields

	if b.Has("title") {
		if title, ok := c.Text(b, "title", taskTitle); ok {
			f.Title = &title
		}
	}
	if b.Has("description") {
		if desc, ok := c.Text(b, "description", taskDescription); ok {
			f.Description = &desc
		}
	}

	var err error
	if b.Has("projectId") {
		if f.ProjectID, err = taskProject(c, r, b, "El ID del proyecto debe ser un número"); err != nil {
			return f, err
		}
	}
	if b.Has("assignedTo") {
		if f.AssignedTo, err = taskAssignee(c, r, b, "El ID del usuario asignado debe ser un número"); err != nil {
			return f, err
		}
	}

	if b.Has("dueDate") {
		if due, ok := c.Date(b, "dueDate", taskDueDate, now); ok {
			f.DueDate = &due
		}
	}
	if b.Has("priority") {
		if p, ok := OneOf(c, b, "priority", constants.Priorities, taskPriorityLabel); ok {
			f.Priority = &p
		}
	}
	if b.Has("status") {
		if s, ok := OneOf(c, b, "status", constants.TaskStatuses, taskStatusLabel); ok {
			f.Status = &s
		}
	}

	return f, nil
}

func taskProject(c *Collector, r repository.Reader, b Body, invalid string) (*uint, error) {
	id, ok := c.Ref(b, "projectId", invalid)
	if !ok {
		return nil, nil
	}
	p, err := repository.FindProject(r, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		c.Add("El proyecto especificado no existe")
		return nil, nil
	}
	return &id, nil
}

func taskAssignee(c *Collector, r repository.Reader, b Body, invalid string) (*uint, error) {
	id, ok := c.Ref(b, "assignedTo", invalid)
	if !ok {
		return nil, nil
	}
	u, err := repository.FindUser(r, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		c.Add("El usuario asignado no existe")
		return nil, nil
	}
	return &id, nil
}
