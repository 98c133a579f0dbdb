// Package seed loads the fixtures the store starts with.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oscar503sv/gestion-de-proyectos/internal/auth"
	"github.com/oscar503sv/gestion-de-proyectos/internal/constants"
	model "github.com/oscar503sv/gestion-de-proyectos/internal/models"
	repository "github.com/oscar503sv/gestion-de-proyectos/internal/repositories"
)

//go:embed seed.yaml
var defaultSeed []byte

type Data struct {
	Users    []User    `yaml:"users"`
	Projects []Project `yaml:"projects"`
	Tasks    []Task    `yaml:"tasks"`
}

type User struct {
	ID       uint           `yaml:"id"`
	Name     string         `yaml:"name"`
	Email    string         `yaml:"email"`
	Password string         `yaml:"password"`
	Role     constants.Role `yaml:"role"`
}

type Project struct {
	ID          uint                    `yaml:"id"`
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description"`
	Status      constants.ProjectStatus `yaml:"status"`
	Deadline    string                  `yaml:"deadline"`
	CreatedBy   uint                    `yaml:"createdBy"`
	CreatedAt   time.Time               `yaml:"createdAt"`
}

type Task struct {
	ID          uint                 `yaml:"id"`
	Title       string               `yaml:"title"`
	Description string               `yaml:"description"`
	Status      constants.TaskStatus `yaml:"status"`
	Priority    constants.Priority   `yaml:"priority"`
	ProjectID   uint                 `yaml:"projectId"`
	AssignedTo  uint                 `yaml:"assignedTo"`
	CreatedAt   time.Time            `yaml:"createdAt"`
	DueDate     string               `yaml:"dueDate"`
}

// Load reads path, or the built-in fixtures when path is empty.
func Load(path string) (*Data, error) {
	raw := defaultSeed
	if path != "" {
		var err error
		if raw, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if err := d.check(); err != nil {
		return nil, err
	}
	return &d, nil
}

// check enforces what the services assume about stored data.
func (d *Data) check() error {
	roles := make(map[uint]constants.Role, len(d.Users))
	for _, u := range d.Users {
		if !u.Role.Valid() {
			return fmt.Errorf("seed user %d: invalid role %q", u.ID, u.Role)
		}
		roles[u.ID] = u.Role
	}
	for _, p := range d.Projects {
		if !p.Status.Valid() {
			return fmt.Errorf("seed project %d: invalid status %q", p.ID, p.Status)
		}
		if roles[p.CreatedBy] != constants.RoleManager {
			return fmt.Errorf("seed project %d: creator %d is not a manager", p.ID, p.CreatedBy)
		}
	}
	for _, t := range d.Tasks {
		if !t.Status.Valid() || !t.Priority.Valid() {
			return fmt.Errorf("seed task %d: invalid status or priority", t.ID)
		}
	}
	return nil
}

// Apply inserts the fixtures, hashing every password.
func Apply(ctx context.Context, store repository.Store, hasher *auth.PasswordHasher, d *Data) error {
	return store.Update(ctx, func(w repository.Writer) error {
		for _, u := range d.Users {
			hash, err := hasher.Hash(u.Password)
			if err != nil {
				return fmt.Errorf("hash password of user %d: %w", u.ID, err)
			}
			if err := w.CreateUser(&model.User{
				ID:       u.ID,
				Name:     u.Name,
				Email:    u.Email,
				Password: hash,
				Role:     u.Role,
			}); err != nil {
				return fmt.Errorf("seed user %d: %w", u.ID, err)
			}
		}

		for _, p := range d.Projects {
			if err := w.CreateProject(&model.Project{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				Status:      p.Status,
				Deadline:    p.Deadline,
				CreatedBy:   p.CreatedBy,
				CreatedAt:   p.CreatedAt,
			}); err != nil {
				return fmt.Errorf("seed project %d: %w", p.ID, err)
			}
		}

		for _, t := range d.Tasks {
			if err := w.CreateTask(&model.Task{
				ID:          t.ID,
				Title:       t.Title,
				Description: t.Description,
				Status:      t.Status,
				Priority:    t.Priority,
				ProjectID:   t.ProjectID,
				AssignedTo:  t.AssignedTo,
				CreatedAt:   t.CreatedAt,
				DueDate:     t.DueDate,
			}); err != nil {
				return fmt.Errorf("seed task %d: %w", t.ID, err)
			}
		}
		return nil
	})
}
