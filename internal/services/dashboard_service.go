package services

import (
	"cmp"
	"context"
	"encoding/json"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/oscar503sv/gestion-de-proyectos/internal/constants"
	"github.com/oscar503sv/gestion-de-proyectos/internal/http/validators"
	model "github.com/oscar503sv/gestion-de-proyectos/internal/models"
	"github.com/oscar503sv/gestion-de-proyectos/internal/policy"
	repository "github.com/oscar503sv/gestion-de-proyectos/internal/repositories"
)

const (
	missingProjectName = "Proyecto no encontrado"
	unassignedName     = "Sin asignar"
)

type UserInfo struct {
	ID   uint           `json:"id"`
	Name string         `json:"name"`
	Role constants.Role `json:"role"`
}

type TaskCounts struct {
	Total      int  `json:"total"`
	Pending    int  `json:"pending"`
	InProgress int  `json:"inProgress"`
	Completed  int  `json:"completed"`
	Unassigned *int `json:"unassigned,omitempty"`
	Overdue    int  `json:"overdue"`
	DueSoon    int  `json:"dueSoon"`
}

type MemberProjects struct {
	Total             int                             `json:"total"`
	WithTasksAssigned int                             `json:"withTasksAssigned"`
	ProjectsBreakdown map[constants.ProjectStatus]int `json:"projectsBreakdown"`
}

type ProjectCounts struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Canceled   int `json:"canceled"`
}

type Deadline struct {
	TaskID       uint                  `json:"taskId"`
	TaskTitle    string                `json:"taskTitle"`
	ProjectName  string                `json:"projectName"`
	AssignedTo   string                `json:"assignedTo,omitempty"`
	DueDate      string                `json:"dueDate"`
	Priority     constants.Priority    `json:"priority"`
	Status       *constants.TaskStatus `json:"status,omitempty"`
	DaysUntilDue int                   `json:"daysUntilDue"`
	IsOverdue    *bool                 `json:"isOverdue,omitempty"`
}

type ProjectProgress struct {
	ID                 uint                    `json:"id"`
	Name               string                  `json:"name"`
	Status             constants.ProjectStatus `json:"status"`
	TotalTasks         int                     `json:"totalTasks"`
	CompletedTasks     int                     `json:"completedTasks"`
	ProgressPercentage int                     `json:"progressPercentage"`
	Deadline           string                  `json:"deadline"`
}

type TeamMember struct {
	UserID         uint   `json:"userId"`
	UserName       string `json:"userName"`
	TotalTasks     int    `json:"totalTasks"`
	CompletedTasks int    `json:"completedTasks"`
	PendingTasks   int    `json:"pendingTasks"`
}

type MemberDashboard struct {
	UserInfo          UserInfo       `json:"userInfo"`
	MyTasks           TaskCounts     `json:"myTasks"`
	MyProjects        MemberProjects `json:"myProjects"`
	UpcomingDeadlines []Deadline     `json:"upcomingDeadlines"`
}

type ManagerDashboard struct {
	UserInfo          UserInfo          `json:"userInfo"`
	AllProjects       ProjectCounts     `json:"allProjects"`
	AllTasks          TaskCounts        `json:"allTasks"`
	ProjectsProgress  []ProjectProgress `json:"projectsProgress"`
	CriticalDeadlines []Deadline        `json:"criticalDeadlines"`
	TeamOverview      []TeamMember      `json:"teamOverview"`
}

// Dashboard holds exactly one of the two views, chosen by the requester's
// role, and serializes as that view.
type Dashboard struct {
	Member  *MemberDashboard
	Manager *ManagerDashboard
}

func (d Dashboard) MarshalJSON() ([]byte, error) {
	if d.Manager != nil {
		return json.Marshal(d.Manager)
	}
	return json.Marshal(d.Member)
}

type DashboardService struct {
	store repository.Store
	log   *zap.Logger
	now   Clock
}

func NewDashboardService(store repository.Store, log *zap.Logger, now Clock) *DashboardService {
	return &DashboardService{
		store: store,
		log:   log,
		now:   orNow(now),
	}
}

func (s *DashboardService) Dashboard(ctx context.Context, actorID uint) (*Dashboard, error) {
	var out *Dashboard

	err := s.store.View(ctx, func(r repository.Reader) error {
		actor, err := loadActor(r, actorID)
		if err != nil {
			return err
		}

		projects, err := r.Projects()
		if err != nil {
			return err
		}
		tasks, err := r.Tasks()
		if err != nil {
			return err
		}
		ix, err := newIndex(r)
		if err != nil {
			return err
		}

		info := UserInfo{ID: actor.ID, Name: actor.Name, Role: actor.Role}
		if actor.IsManager() {
			out = &Dashboard{Manager: s.manager(info, ix, projects, tasks)}
		} else {
			out = &Dashboard{Member: s.member(info, actor, ix, projects, tasks)}
		}
		return nil
	})

	return out, err
}

func (s *DashboardService) member(info UserInfo, actor *model.User, ix *index, projects []model.Project, tasks []model.Task) *MemberDashboard {
	now := s.now()
	d := &MemberDashboard{UserInfo: info}

	mine := make([]model.Task, 0)
	for _, t := range tasks {
		if t.AssignedTo == actor.ID {
			mine = append(mine, t)
		}
	}

	d.MyTasks = countTasks(mine, now)

	visible := policy.VisibleProjectIDs(actor, tasks)
	mp := MemberProjects{ProjectsBreakdown: make(map[constants.ProjectStatus]int)}
	for _, p := range projects {
		if _, ok := visible[p.ID]; !ok {
			continue
		}
		mp.Total++
		mp.ProjectsBreakdown[p.Status]++
	}
	mp.WithTasksAssigned = mp.Total
	d.MyProjects = mp

	d.UpcomingDeadlines = []Deadline{}
	for _, t := range mine {
		sched := scheduleOf(&t, now)
		if !sched.DueSoon {
			continue
		}
		d.UpcomingDeadlines = append(d.UpcomingDeadlines, Deadline{
			TaskID:       t.ID,
			TaskTitle:    t.Title,
			ProjectName:  ix.projectName(t.ProjectID),
			DueDate:      t.DueDate,
			Priority:     t.Priority,
			DaysUntilDue: sched.DaysUntilDue,
		})
	}
	sortDeadlines(d.UpcomingDeadlines)
	return d
}

func (s *DashboardService) manager(info UserInfo, ix *index, projects []model.Project, tasks []model.Task) *ManagerDashboard {
	now := s.now()
	d := &ManagerDashboard{UserInfo: info}

	pc := ProjectCounts{Total: len(projects)}
	for _, p := range projects {
		switch p.Status {
		case constants.ProjectPending:
			pc.Pending++
		case constants.ProjectInProgress:
			pc.InProgress++
		case constants.ProjectCompleted:
			pc.Completed++
		case constants.ProjectCancelled:
			pc.Canceled++
		}
	}
	d.AllProjects = pc

	counts := countTasks(tasks, now)
	unassigned := 0
	for _, t := range tasks {
		if _, ok := ix.users[t.AssignedTo]; !ok {
			unassigned++
		}
	}
	counts.Unassigned = &unassigned
	d.AllTasks = counts

	d.ProjectsProgress = make([]ProjectProgress, 0, len(projects))
	for _, p := range projects {
		details := ix.projectDetails(p, tasksOf(tasks, p.ID))
		d.ProjectsProgress = append(d.ProjectsProgress, ProjectProgress{
			ID:                 p.ID,
			Name:               p.Name,
			Status:             p.Status,
			TotalTasks:         details.TotalTasks,
			CompletedTasks:     details.CompletedTasks,
			ProgressPercentage: details.ProgressPercentage,
			Deadline:           p.Deadline,
		})
	}
	loc := now.Location()
	slices.SortStableFunc(d.ProjectsProgress, func(a, b ProjectProgress) int {
		return compareDates(a.Deadline, b.Deadline, loc)
	})

	// Due-soon tasks first, then overdue ones, before ordering by days left.
	var soon, overdue []Deadline
	for _, t := range tasks {
		sched := scheduleOf(&t, now)
		if !sched.DueSoon && !sched.Overdue {
			continue
		}

		status := t.Status
		isOverdue := sched.Overdue
		dl := Deadline{
			TaskID:       t.ID,
			TaskTitle:    t.Title,
			ProjectName:  ix.projectName(t.ProjectID),
			AssignedTo:   ix.userName(t.AssignedTo),
			DueDate:      t.DueDate,
			Priority:     t.Priority,
			Status:       &status,
			DaysUntilDue: sched.DaysUntilDue,
			IsOverdue:    &isOverdue,
		}
		if sched.Overdue {
			overdue = append(overdue, dl)
		} else {
			soon = append(soon, dl)
		}
	}
	d.CriticalDeadlines = append(append([]Deadline{}, soon...), overdue...)
	sortDeadlines(d.CriticalDeadlines)

	d.TeamOverview = []TeamMember{}
	for _, u := range ix.sortedUsers() {
		if !u.IsMember() {
			continue
		}
		m := TeamMember{UserID: u.ID, UserName: u.Name}
		for _, t := range tasks {
			if t.AssignedTo != u.ID {
				continue
			}
			m.TotalTasks++
			if t.IsCompleted() {
				m.CompletedTasks++
			}
		}
		m.PendingTasks = m.TotalTasks - m.CompletedTasks
		d.TeamOverview = append(d.TeamOverview, m)
	}
	return d
}

func countTasks(tasks []model.Task, now time.Time) TaskCounts {
	c := TaskCounts{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case constants.StatusPending:
			c.Pending++
		case constants.StatusInProgress:
			c.InProgress++
		case constants.StatusCompleted:
			c.Completed++
		}

		sched := scheduleOf(&t, now)
		if sched.Overdue {
			c.Overdue++
		}
		if sched.DueSoon {
			c.DueSoon++
		}
	}
	return c
}

func sortDeadlines(dl []Deadline) {
	slices.SortStableFunc(dl, func(a, b Deadline) int {
		return cmp.Compare(a.DaysUntilDue, b.DaysUntilDue)
	})
}

// compareDates orders ISO8601 strings chronologically. Unreadable dates go
// last.
func compareDates(a, b string, loc *time.Location) int {
	ta, okA := validators.ParseDate(a, loc)
	tb, okB := validators.ParseDate(b, loc)
	switch {
	case okA && okB:
		return ta.Compare(tb)
	case okA:
		return -1
	case okB:
		return 1
	}
	return 0
}

func (ix *index) projectName(id uint) string {
	if p, ok := ix.projects[id]; ok {
		return p.Name
	}
	return missingProjectName
}

func (ix *index) userName(id uint) string {
	if u, ok := ix.users[id]; ok {
		return u.Name
	}
	return unassignedName
}

func (ix *index) sortedUsers() []*model.User {
	users := make([]*model.User, 0, len(ix.users))
	for _, u := range ix.users {
		users = append(users, u)
	}
	slices.SortFunc(users, func(a, b *model.User) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return users
}
