package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oscar503sv/gestion-de-proyectos/internal/constants"
	model "github.com/oscar503sv/gestion-de-proyectos/internal/models"
)

var (
	manager = &model.User{ID: 1, Role: constants.RoleManager}
	member  = &model.User{ID: 2, Role: constants.RoleMember}
	other   = &model.User{ID: 3, Role: constants.RoleMember}
)

func TestCanViewTask(t *testing.T) {
	task := &model.Task{ID: 1, AssignedTo: 2}

	assert.True(t, CanViewTask(manager, task))
	assert.True(t, CanViewTask(member, task))
	assert.False(t, CanViewTask(other, task))
	assert.False(t, CanViewTask(member, nil))
}

func TestManagementIsManagerOnly(t *testing.T) {
	assert.True(t, CanManageProjects(manager))
	assert.False(t, CanManageProjects(member))
	assert.True(t, CanManageTasks(manager))
	assert.False(t, CanManageTasks(member))
	assert.False(t, CanDeleteUser(member))
	assert.False(t, CanChangeRole(member))
}

func TestVisibleProjectIDs(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, ProjectID: 10, AssignedTo: 2},
		{ID: 2, ProjectID: 10, AssignedTo: 2},
		{ID: 3, ProjectID: 20, AssignedTo: 3},
		{ID: 4, ProjectID: 30, AssignedTo: 2},
	}

	assert.Nil(t, VisibleProjectIDs(manager, tasks))
	assert.Equal(t, map[uint]struct{}{10: {}, 30: {}}, VisibleProjectIDs(member, tasks))

	assert.True(t, CanViewProject(member, &model.Project{ID: 30}, tasks))
	assert.False(t, CanViewProject(member, &model.Project{ID: 20}, tasks))
	assert.True(t, CanViewProject(manager, &model.Project{ID: 99}, tasks))
}

func TestCanEditUser(t *testing.T) {
	assert.True(t, CanEditUser(member, member))
	assert.False(t, CanEditUser(member, other))
	assert.True(t, CanEditUser(manager, other))
}

func TestEvaluateProjectDeletion(t *testing.T) {
	done := model.Task{Status: constants.StatusCompleted}
	open := model.Task{Status: constants.StatusInProgress}

	cases := []struct {
		name      string
		status    constants.ProjectStatus
		tasks     []model.Task
		allowed   bool
		message   string
		firstLine string
	}{
		{"no tasks", constants.ProjectInProgress, nil, true, "", ""},
		{"completed with completed tasks", constants.ProjectCompleted, []model.Task{done, done}, true, "", ""},
		{"pending with completed tasks", constants.ProjectPending, []model.Task{done}, false,
			"No se puede eliminar el proyecto porque tiene tareas asociadas", "El proyecto tiene 1 tareas asociadas"},
		{"cancelled with tasks", constants.ProjectCancelled, []model.Task{done, open}, false,
			"No se puede eliminar el proyecto cancelado porque tiene tareas asociadas", "El proyecto tiene 2 tareas asociadas"},
		{"completed with open tasks", constants.ProjectCompleted, []model.Task{done, open, open}, false,
			"No se puede eliminar el proyecto completado porque tiene tareas sin completar", "El proyecto tiene 2 tareas sin completar"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := EvaluateProjectDeletion(&model.Project{Status: tc.status}, tc.tasks)
			assert.Equal(t, tc.allowed, v.Allowed)
			assert.Equal(t, tc.message, v.Message)
			assert.Equal(t, len(tc.tasks), v.TasksCount)
			if tc.firstLine != "" {
				assert.Equal(t, tc.firstLine, v.Details[0])
			}
		})
	}
}

func TestCountUserDependents(t *testing.T) {
	projects := []model.Project{{ID: 1, CreatedBy: 1}, {ID: 2, CreatedBy: 1}}
	tasks := []model.Task{{ID: 1, AssignedTo: 2}, {ID: 2, AssignedTo: 3}}

	assert.Equal(t, UserDependents{ProjectsCount: 2}, CountUserDependents(1, projects, tasks))
	assert.Equal(t, UserDependents{TasksCount: 1}, CountUserDependents(2, projects, tasks))
	assert.False(t, CountUserDependents(4, projects, tasks).Blocking())
}
