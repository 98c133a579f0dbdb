package services

import (
	"github.com/oscar503sv/gestion-de-proyectos/internal/constants"
	model "github.com/oscar503sv/gestion-de-proyectos/internal/models"
	"github.com/oscar503sv/gestion-de-proyectos/internal/policy"
)

type ProjectView struct {
	model.Project
	CreatedByUser *model.UserSummary `json:"createdByUser"`
}

type ProjectDetails struct {
	ProjectView
	TotalTasks         int `json:"totalTasks"`
	CompletedTasks     int `json:"completedTasks"`
	ProgressPercentage int `json:"progressPercentage"`
	TeamSize           int `json:"teamSize"`
}

type ProjectRef struct {
	ID        uint                    `json:"id"`
	Name      string                  `json:"name"`
	Status    constants.ProjectStatus `json:"status"`
	CreatedBy *model.UserSummary      `json:"createdBy"`
}

type TaskView struct {
	model.Task
	AssignedToUser *model.UserSummary `json:"assignedToUser"`
	Project        *ProjectRef        `json:"project"`
}

type DeletedProject struct {
	ID          uint                    `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Status      constants.ProjectStatus `json:"status"`
}

type TaskSummary struct {
	ID         uint                 `json:"id"`
	Title      string               `json:"title"`
	Status     constants.TaskStatus `json:"status"`
	AssignedTo uint                 `json:"assignedTo"`
}

// ProjectDeletionConflict is the breakdown sent when the deletion policy
// refuses a project.
type ProjectDeletionConflict struct {
	Details             []string                `json:"details"`
	ProjectStatus       constants.ProjectStatus `json:"projectStatus"`
	TasksCount          int                     `json:"tasksCount"`
	CompletedTasksCount int                     `json:"completedTasksCount"`
	AssociatedTasks     []TaskSummary           `json:"associatedTasks"`
}

type DeletedTask struct {
	ID        uint                 `json:"id"`
	Title     string               `json:"title"`
	Status    constants.TaskStatus `json:"status"`
	ProjectID uint                 `json:"projectId"`
}

type DeletedUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserDeletionConflict reports what still references a user.
type UserDeletionConflict struct {
	Details []string `json:"details"`
	policy.UserDependents
}

type ProjectTaskView struct {
	model.Task
	AssignedToUser *model.UserSummary `json:"assignedToUser"`
	DaysUntilDue   int                `json:"daysUntilDue"`
	IsOverdue      bool               `json:"isOverdue"`
	IsDueSoon      bool               `json:"isDueSoon"`
}

type TaskStatistics struct {
	Total              int `json:"total"`
	Pending            int `json:"pending"`
	InProgress         int `json:"inProgress"`
	Completed          int `json:"completed"`
	Overdue            int `json:"overdue"`
	DueSoon            int `json:"dueSoon"`
	ProgressPercentage int `json:"progressPercentage"`
}

type TaskFilter struct {
	Status     *constants.TaskStatus `json:"status"`
	Priority   *constants.Priority   `json:"priority"`
	AssignedTo *uint                 `json:"assignedTo"`
}

type ProjectTasks struct {
	Project    ProjectView       `json:"project"`
	Tasks      []ProjectTaskView `json:"tasks"`
	Statistics TaskStatistics    `json:"statistics"`
	Filters    TaskFilter        `json:"filters"`
}

type LoginResult struct {
	User         *model.User `json:"user"`
	SessionToken string      `json:"sessionToken"`
}
