package repository

import (
	"context"
	"errors"

	model "github.com/oscar503sv/gestion-de-proyectos/internal/models"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicateID = errors.New("record id already in use")
)

// Reader exposes the read side of a transaction. Listings are ordered by id.
type Reader interface {
	User(id uint) (*model.User, error)
	Users() ([]model.User, error)
	Project(id uint) (*model.Project, error)
	Projects() ([]model.Project, error)
	Task(id uint) (*model.Task, error)
	Tasks() ([]model.Task, error)
}

// Writer is a Reader that can mutate. Create* assigns the next id when the
// record's ID is zero and keeps it otherwise.
type Writer interface {
	Reader

	CreateUser(user *model.User) error
	SaveUser(user *model.User) error
	DeleteUser(id uint) error

	CreateProject(project *model.Project) error
	SaveProject(project *model.Project) error
	DeleteProject(id uint) error

	CreateTask(task *model.Task) error
	SaveTask(task *model.Task) error
	DeleteTask(id uint) error
}

// Store holds users, projects and tasks. Update runs fn exclusively: no other
// View or Update observes the collections until it returns.
type Store interface {
	View(ctx context.Context, fn func(r Reader) error) error
	Update(ctx context.Context, fn func(w Writer) error) error
	Close() error
}

func TasksOfProject(r Reader, projectID uint) ([]model.Task, error) {
	tasks, err := r.Tasks()
	if err != nil {
		return nil, err
	}

	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

// FindUser returns nil when the user does not exist.
func FindUser(r Reader, id uint) (*model.User, error) {
	u, err := r.User(id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return u, err
}

// FindProject returns nil when the project does not exist.
func FindProject(r Reader, id uint) (*model.Project, error) {
	p, err := r.Project(id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return p, err
}
