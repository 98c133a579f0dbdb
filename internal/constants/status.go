package constants

import "strings"

type Role string

const (
	RoleManager Role = "gerente"
	RoleMember  Role = "usuario"
)

var Roles = []Role{RoleManager, RoleMember}

func (r Role) Valid() bool {
	return r == RoleManager || r == RoleMember
}

type ProjectStatus string

const (
	ProjectPending    ProjectStatus = "pendiente"
	ProjectInProgress ProjectStatus = "en progreso"
	ProjectCompleted  ProjectStatus = "completado"
	ProjectCancelled  ProjectStatus = "cancelado"
)

var ProjectStatuses = []ProjectStatus{ProjectPending, ProjectInProgress, ProjectCompleted, ProjectCancelled}

func (s ProjectStatus) Valid() bool {
	for _, v := range ProjectStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type TaskStatus string

const (
	StatusPending    TaskStatus = "pendiente"
	StatusInProgress TaskStatus = "en progreso"
	StatusCompleted  TaskStatus = "completado"
)

var TaskStatuses = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}

func (s TaskStatus) Valid() bool {
	for _, v := range TaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "baja"
	PriorityMedium Priority = "media"
	PriorityHigh   Priority = "alta"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Join renders an enum list the way validation messages quote it.
func Join[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
