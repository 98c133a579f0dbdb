// Package policy holds the role and ownership rules. Every function is pure:
// callers pass in the records they already loaded.
package policy

import (
	model "github.com/oscar503sv/gestion-de-proyectos/internal/models"
)

func CanManageProjects(actor *model.User) bool {
	return actor.IsManager()
}

func CanManageTasks(actor *model.User) bool {
	return actor.IsManager()
}

// CanViewTask: managers see every task, members only their own.
func CanViewTask(actor *model.User, task *model.Task) bool {
	if actor.IsManager() {
		return true
	}
	return task != nil && actor.IsMember() && task.AssignedTo == actor.ID
}

// CanUpdateTask reports whether actor may change task at all. Members are
// further limited to the status field, see StatusOnlyFields.
func CanUpdateTask(actor *model.User, task *model.Task) bool {
	return CanViewTask(actor, task)
}

// StatusOnlyFields are the body keys a member may send when updating one
// of their tasks.
var StatusOnlyFields = map[string]struct{}{
	"status":      {},
	"requestedBy": {},
}

// VisibleProjectIDs returns the projects a member takes part in, that is
// every project holding at least one task assigned to them. It returns nil
// for managers, who see everything.
func VisibleProjectIDs(actor *model.User, tasks []model.Task) map[uint]struct{} {
	if actor.IsManager() {
		return nil
	}

	ids := make(map[uint]struct{})
	if !actor.IsMember() {
		return ids
	}
	for _, t := range tasks {
		if t.AssignedTo == actor.ID {
			ids[t.ProjectID] = struct{}{}
		}
	}
	return ids
}

func CanViewProject(actor *model.User, project *model.Project, tasks []model.Task) bool {
	if actor.IsManager() {
		return true
	}
	_, ok := VisibleProjectIDs(actor, tasks)[project.ID]
	return ok
}

// CanEditUser: users edit their own profile, managers edit anyone.
func CanEditUser(actor, target *model.User) bool {
	return actor.IsManager() || actor.ID == target.ID
}

func CanChangeRole(actor *model.User) bool {
	return actor.IsManager()
}

func CanDeleteUser(actor *model.User) bool {
	return actor.IsManager()
}
