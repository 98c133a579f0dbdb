package services

import (
	"math"
	"time"

	apperrors "github.com/oscar503sv/gestion-de-proyectos/internal/errors"
	"github.com/oscar503sv/gestion-de-proyectos/internal/http/validators"
	model "github.com/oscar503sv/gestion-de-proyectos/internal/models"
	repository "github.com/oscar503sv/gestion-de-proyectos/internal/repositories"
)

// Clock returns the current time. Date checks use its location for
// "today".
type Clock func() time.Time

func orNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// loadActor resolves the requestedBy user. A zero id means the caller did
// not send a usable one.
func loadActor(r repository.Reader, id uint) (*model.User, error) {
	if id == 0 {
		return nil, apperrors.ErrRequesterRequired
	}
	actor, err := repository.FindUser(r, id)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, apperrors.ErrRequesterNotFound
	}
	return actor, nil
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

const dueSoonDays = 7

type schedule struct {
	DaysUntilDue int
	Overdue      bool
	DueSoon      bool
}

// scheduleOf places a task's due date relative to now. Completed tasks are
// never overdue or due soon. An unreadable due date yields the zero value.
func scheduleOf(t *model.Task, now time.Time) schedule {
	due, ok := validators.ParseDate(t.DueDate, now.Location())
	if !ok {
		return schedule{}
	}

	diff := due.Sub(now)
	s := schedule{DaysUntilDue: int(math.Ceil(diff.Hours() / 24))}
	if t.IsCompleted() {
		return s
	}

	s.Overdue = diff < 0
	s.DueSoon = !s.Overdue && s.DaysUntilDue <= dueSoonDays
	return s
}

type index struct {
	users    map[uint]*model.User
	projects map[uint]*model.Project
}

func newIndex(r repository.Reader) (*index, error) {
	users, err := r.Users()
	if err != nil {
		return nil, err
	}
	projects, err := r.Projects()
	if err != nil {
		return nil, err
	}

	ix := &index{
		users:    make(map[uint]*model.User, len(users)),
		projects: make(map[uint]*model.Project, len(projects)),
	}
	for i := range users {
		ix.users[users[i].ID] = &users[i]
	}
	for i := range projects {
		ix.projects[projects[i].ID] = &projects[i]
	}
	return ix, nil
}

func (ix *index) user(id uint) *model.UserSummary {
	return ix.users[id].Summary()
}

func (ix *index) project(p model.Project) ProjectView {
	return ProjectView{Project: p, CreatedByUser: ix.user(p.CreatedBy)}
}

func (ix *index) task(t model.Task) TaskView {
	v := TaskView{Task: t, AssignedToUser: ix.user(t.AssignedTo)}
	if p, ok := ix.projects[t.ProjectID]; ok {
		v.Project = &ProjectRef{
			ID:        p.ID,
			Name:      p.Name,
			Status:    p.Status,
			CreatedBy: ix.user(p.CreatedBy),
		}
	}
	return v
}

func (ix *index) projectDetails(p model.Project, tasks []model.Task) *ProjectDetails {
	d := &ProjectDetails{ProjectView: ix.project(p), TotalTasks: len(tasks)}

	team := make(map[uint]struct{})
	for _, t := range tasks {
		if t.IsCompleted() {
			d.CompletedTasks++
		}
		team[t.AssignedTo] = struct{}{}
	}
	d.ProgressPercentage = percent(d.CompletedTasks, d.TotalTasks)
	d.TeamSize = len(team)
	return d
}
