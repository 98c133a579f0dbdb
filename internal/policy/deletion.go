package policy

import (
	"fmt"

	"github.com/oscar503sv/gestion-de-proyectos/internal/constants"
	model "github.com/oscar503sv/gestion-de-proyectos/internal/models"
)

// ProjectDeletion is the verdict on removing a project given its tasks.
type ProjectDeletion struct {
	Allowed        bool
	Message        string
	Details        []string
	TasksCount     int
	CompletedCount int
}

// EvaluateProjectDeletion allows removal of a project without tasks, or of a
// completed project whose tasks are all completed. Nothing else may go.
func EvaluateProjectDeletion(project *model.Project, tasks []model.Task) ProjectDeletion {
	v := ProjectDeletion{TasksCount: len(tasks)}
	for _, t := range tasks {
		if t.IsCompleted() {
			v.CompletedCount++
		}
	}

	if v.TasksCount == 0 {
		v.Allowed = true
		return v
	}

	allCompleted := v.CompletedCount == v.TasksCount

	switch {
	case project.Status == constants.ProjectCompleted && allCompleted:
		v.Allowed = true
	case project.Status == constants.ProjectCancelled:
		v.Message = "No se puede eliminar el proyecto cancelado porque tiene tareas asociadas"
		v.Details = []string{
			fmt.Sprintf("El proyecto tiene %d tareas asociadas", v.TasksCount),
			"Elimine o reasigne las tareas antes de eliminar el proyecto cancelado",
		}
	case project.Status == constants.ProjectCompleted:
		v.Message = "No se puede eliminar el proyecto completado porque tiene tareas sin completar"
		v.Details = []string{
			fmt.Sprintf("El proyecto tiene %d tareas sin completar", v.TasksCount-v.CompletedCount),
			"Complete o reasigne las tareas pendientes antes de eliminar el proyecto",
		}
	default:
		v.Message = "No se puede eliminar el proyecto porque tiene tareas asociadas"
		v.Details = []string{
			fmt.Sprintf("El proyecto tiene %d tareas asociadas", v.TasksCount),
			"Elimine o reasigne las tareas antes de eliminar el proyecto",
		}
	}

	return v
}

// UserDependents counts what keeps a user from being deleted.
type UserDependents struct {
	ProjectsCount int `json:"projectsCount"`
	TasksCount    int `json:"tasksCount"`
}

func (d UserDependents) Blocking() bool {
	return d.ProjectsCount > 0 || d.TasksCount > 0
}

func CountUserDependents(userID uint, projects []model.Project, tasks []model.Task) UserDependents {
	var d UserDependents
	for _, p := range projects {
		if p.CreatedBy == userID {
			d.ProjectsCount++
		}
	}
	for _, t := range tasks {
		if t.AssignedTo == userID {
			d.TasksCount++
		}
	}
	return d
}
