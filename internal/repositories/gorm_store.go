package repository

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	model "github.com/oscar503sv/gestion-de-proyectos/internal/models"
)

// GormStore implements Store on a gorm database. Writes run in a database
// transaction and are serialized so that id allocation and uniqueness
// checks see a stable snapshot.
type GormStore struct {
	db *gorm.DB
	mu sync.Mutex
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&model.User{}, &model.Project{}, &model.Task{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) View(ctx context.Context, fn func(r Reader) error) error {
	return fn(gormTx{db: s.db.WithContext(ctx)})
}

func (s *GormStore) Update(ctx context.Context, fn func(w Writer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(gormTx{db: tx})
	})
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type gormTx struct {
	db *gorm.DB
}

func (tx gormTx) User(id uint) (*model.User, error) {
	var user model.User
	if err := tx.first(&user, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (tx gormTx) Users() ([]model.User, error) {
	var users []model.User
	err := tx.db.Order("id asc").Find(&users).Error
	return users, err
}

func (tx gormTx) Project(id uint) (*model.Project, error) {
	var project model.Project
	if err := tx.first(&project, id); err != nil {
		return nil, err
	}
	return &project, nil
}

func (tx gormTx) Projects() ([]model.Project, error) {
	var projects []model.Project
	err := tx.db.Order("id asc").Find(&projects).Error
	return projects, err
}

func (tx gormTx) Task(id uint) (*model.Task, error) {
	var task model.Task
	if err := tx.first(&task, id); err != nil {
		return nil, err
	}
	return &task, nil
}

func (tx gormTx) Tasks() ([]model.Task, error) {
	var tasks []model.Task
	err := tx.db.Order("id asc").Find(&tasks).Error
	return tasks, err
}

func (tx gormTx) CreateUser(user *model.User) error {
	return tx.create(&model.User{}, user.ID, user)
}

func (tx gormTx) SaveUser(user *model.User) error {
	return tx.save(&model.User{}, user.ID, user)
}

func (tx gormTx) DeleteUser(id uint) error {
	return tx.delete(&model.User{}, id)
}

func (tx gormTx) CreateProject(project *model.Project) error {
	return tx.create(&model.Project{}, project.ID, project)
}

func (tx gormTx) SaveProject(project *model.Project) error {
	return tx.save(&model.Project{}, project.ID, project)
}

func (tx gormTx) DeleteProject(id uint) error {
	return tx.delete(&model.Project{}, id)
}

func (tx gormTx) CreateTask(task *model.Task) error {
	return tx.create(&model.Task{}, task.ID, task)
}

func (tx gormTx) SaveTask(task *model.Task) error {
	return tx.save(&model.Task{}, task.ID, task)
}

func (tx gormTx) DeleteTask(id uint) error {
	return tx.delete(&model.Task{}, id)
}

func (tx gormTx) first(dest any, id uint) error {
	err := tx.db.First(dest, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (tx gormTx) exists(table any, id uint) (bool, error) {
	var count int64
	if err := tx.db.Model(table).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (tx gormTx) create(table any, id uint, record any) error {
	if id != 0 {
		found, err := tx.exists(table, id)
		if err != nil {
			return err
		}
		if found {
			return ErrDuplicateID
		}
	}
	return tx.db.Create(record).Error
}

func (tx gormTx) save(table any, id uint, record any) error {
	found, err := tx.exists(table, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return tx.db.Save(record).Error
}

func (tx gormTx) delete(table any, id uint) error {
	res := tx.db.Delete(table, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
