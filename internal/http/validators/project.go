package validators

import (
	"time"

	"github.com/oscar503sv/gestion-de-proyectos/internal/constants"
	model "github.com/oscar503sv/gestion-de-proyectos/internal/models"
	repository "github.com/oscar503sv/gestion-de-proyectos/internal/repositories"
)

// ProjectFields holds the validated values; nil means the field was not sent.
type ProjectFields struct {
	Name        *string
	Description *string
	Deadline    *string
	Status      *constants.ProjectStatus
	CreatedBy   *uint
}

var (
	projectName = TextRule{
		Min: 3, Max: 100,
		Required: "El nombre del proyecto es requerido",
		TooShort: "El nombre del proyecto debe tener al menos 3 caracteres",
		TooLong:  "El nombre del proyecto no puede exceder 100 caracteres",
	}
	projectDescription = TextRule{
		Min: 10, Max: 500,
		Required: "La descripción del proyecto es requerida",
		TooShort: "La descripción debe tener al menos 10 caracteres",
		TooLong:  "La descripción no puede exceder 500 caracteres",
	}
	projectDeadline = DateRule{
		Required: "La fecha límite es requerida",
		Format:   "La fecha límite debe estar en formato ISO8601 (YYYY-MM-DD)",
		Past:     "La fecha límite no puede ser anterior a hoy",
	}
)

const projectStatusLabel = "El estado debe ser uno de"

// ProjectCreate validates a new project. name, description and deadline are
// required; status and createdBy are optional.
func ProjectCreate(c *Collector, r repository.Reader, b Body, now time.Time) (ProjectFields, error) {
	var f ProjectFields

	name, ok := c.Text(b, "name", projectName)
	if ok {
		f.Name = &name
	}
	if name != "" {
		taken, err := projectNameTaken(r, name, 0)
		if err != nil {
			return f, err
		}
		if taken {
			c.Add("Ya existe un proyecto con ese nombre")
		}
	}

	if desc, ok := c.Text(b, "description", projectDescription); ok {
		f.Description = &desc
	}

	if deadline, ok := c.Date(b, "deadline", projectDeadline, now); ok {
		f.Deadline = &deadline
	}

	if b.Has("createdBy") {
		id, err := projectCreator(c, r, b, "El ID del usuario creador es requerido y debe ser un número")
		if err != nil {
			return f, err
		}
		f.CreatedBy = id
	}

	if !b.Blank("status") {
		if status, ok := OneOf(c, b, "status", constants.ProjectStatuses, projectStatusLabel); ok {
			f.Status = &status
		}
	}

	return f, nil
}

// ProjectUpdate validates the fields present in b against project.
func ProjectUpdate(c *Collector, r repository.Reader, b Body, project *model.Project, now time.Time) (ProjectFields, error) {
	var f ProjectFields

	if b.Has("name") {
		name, ok := c.Text(b, "name", projectName)
		if ok {
			taken, err := projectNameTaken(r, name, project.ID)
			if err != nil {
				return f, err
			}
			if taken {
				c.Add("Ya existe otro proyecto con ese nombre")
			} else {
				f.Name = &name
			}
		}
	}

	if b.Has("description") {
		if desc, ok := c.Text(b, "description", projectDescription); ok {
			f.Description = &desc
		}
	}

	if b.Has("deadline") {
		if deadline, ok := c.Date(b, "deadline", projectDeadline, now); ok {
			f.Deadline = &deadline
		}
	}

	if b.Has("status") {
		if status, ok := OneOf(c, b, "status", constants.ProjectStatuses, projectStatusLabel); ok {
			f.Status = &status
		}
	}

	if b.Has("createdBy") {
		id, err := projectCreator(c, r, b, "El ID del usuario creador debe ser un número")
		if err != nil {
			return f, err
		}
		f.CreatedBy = id
	}

	return f, nil
}

func projectCreator(c *Collector, r repository.Reader, b Body, invalid string) (*uint, error) {
	id, ok := c.Ref(b, "createdBy", invalid)
	if !ok {
		return nil, nil
	}

	creator, err := repository.FindUser(r, id)
	if err != nil {
		return nil, err
	}
	switch {
	case creator == nil:
		c.Add("El usuario creador no existe")
	case !creator.IsManager():
		c.Add("Solo los usuarios con rol de gerente pueden ser asignados como creadores")
	default:
		return &id, nil
	}
	return nil, nil
}

func projectNameTaken(r repository.Reader, name string, except uint) (bool, error) {
	projects, err := r.Projects()
	if err != nil {
		return false, err
	}
	for _, p := range projects {
		if p.ID != except && p.HasName(name) {
			return true, nil
		}
	}
	return false, nil
}
