package repository

import (
	"context"
	"sort"
	"sync"

	model "github.com/oscar503sv/gestion-de-proyectos/internal/models"
)

// MemoryStore keeps every collection in maps guarded by a single lock.
// Ids come from per-collection counters that never move backwards, so an id
// freed by a delete is not handed out again.
type MemoryStore struct {
	mu sync.RWMutex

	users    map[uint]model.User
	projects map[uint]model.Project
	tasks    map[uint]model.Task

	lastUserID    uint
	lastProjectID uint
	lastTaskID    uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[uint]model.User),
		projects: make(map[uint]model.Project),
		tasks:    make(map[uint]model.Task),
	}
}

func (s *MemoryStore) View(ctx context.Context, fn func(r Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(memoryTx{s})
}

// Update does not roll back: fn must finish its checks before writing.
func (s *MemoryStore) Update(ctx context.Context, fn func(w Writer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(memoryTx{s})
}

func (s *MemoryStore) Close() error {
	return nil
}

type memoryTx struct {
	s *MemoryStore
}

func (tx memoryTx) User(id uint) (*model.User, error) {
	u, ok := tx.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (tx memoryTx) Users() ([]model.User, error) {
	return sortedValues(tx.s.users), nil
}

func (tx memoryTx) Project(id uint) (*model.Project, error) {
	p, ok := tx.s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (tx memoryTx) Projects() ([]model.Project, error) {
	return sortedValues(tx.s.projects), nil
}

func (tx memoryTx) Task(id uint) (*model.Task, error) {
	t, ok := tx.s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (tx memoryTx) Tasks() ([]model.Task, error) {
	return sortedValues(tx.s.tasks), nil
}

func (tx memoryTx) CreateUser(user *model.User) error {
	id, err := nextID(tx.s.users, &tx.s.lastUserID, user.ID)
	if err != nil {
		return err
	}
	user.ID = id
	tx.s.users[id] = *user
	return nil
}

func (tx memoryTx) SaveUser(user *model.User) error {
	if _, ok := tx.s.users[user.ID]; !ok {
		return ErrNotFound
	}
	tx.s.users[user.ID] = *user
	return nil
}

func (tx memoryTx) DeleteUser(id uint) error {
	return deleteKey(tx.s.users, id)
}

func (tx memoryTx) CreateProject(project *model.Project) error {
	id, err := nextID(tx.s.projects, &tx.s.lastProjectID, project.ID)
	if err != nil {
		return err
	}
	project.ID = id
	tx.s.projects[id] = *project
	return nil
}

func (tx memoryTx) SaveProject(project *model.Project) error {
	if _, ok := tx.s.projects[project.ID]; !ok {
		return ErrNotFound
	}
	tx.s.projects[project.ID] = *project
	return nil
}

func (tx memoryTx) DeleteProject(id uint) error {
	return deleteKey(tx.s.projects, id)
}

func (tx memoryTx) CreateTask(task *model.Task) error {
	id, err := nextID(tx.s.tasks, &tx.s.lastTaskID, task.ID)
	if err != nil {
		return err
	}
	task.ID = id
	tx.s.tasks[id] = *task
	return nil
}

func (tx memoryTx) SaveTask(task *model.Task) error {
	if _, ok := tx.s.tasks[task.ID]; !ok {
		return ErrNotFound
	}
	tx.s.tasks[task.ID] = *task
	return nil
}

func (tx memoryTx) DeleteTask(id uint) error {
	return deleteKey(tx.s.tasks, id)
}

func nextID[T any](m map[uint]T, last *uint, requested uint) (uint, error) {
	if requested == 0 {
		*last++
		return *last, nil
	}

	if _, exists := m[requested]; exists {
		return 0, ErrDuplicateID
	}
	if requested > *last {
		*last = requested
	}
	return requested, nil
}

func deleteKey[T any](m map[uint]T, id uint) error {
	if _, ok := m[id]; !ok {
		return ErrNotFound
	}
	delete(m, id)
	return nil
}

func sortedValues[T any](m map[uint]T) []T {
	ids := make([]uint, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}
