package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oscar503sv/gestion-de-proyectos/internal/constants"
	model "github.com/oscar503sv/gestion-de-proyectos/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err, "failed to connect database")

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func stores(t *testing.T) map[string]Store {
	gormStore, err := NewGormStore(setupTestDB(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = gormStore.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"gorm":   gormStore,
	}
}

func TestStore_CreateAssignsSequentialIDs(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			err := store.Update(ctx, func(w Writer) error {
				for _, n := range []string{"Ana", "Luis"} {
					u := &model.User{Name: n, Email: n + "@example.com", Password: "x", Role: constants.RoleMember}
					if err := w.CreateUser(u); err != nil {
						return err
					}
				}
				return nil
			})
			require.NoError(t, err)

			err = store.View(ctx, func(r Reader) error {
				users, err := r.Users()
				require.NoError(t, err)
				require.Len(t, users, 2)
				assert.Equal(t, uint(1), users[0].ID)
				assert.Equal(t, uint(2), users[1].ID)
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestStore_ConcurrentCreatesGetDistinctIDs(t *testing.T) {
	const writers = 50

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			var (
				wg  sync.WaitGroup
				mu  sync.Mutex
				ids = make(map[uint]struct{}, writers)
			)
			errs := make(chan error, writers)
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					u := &model.User{
						Name:     fmt.Sprintf("Usuario %d", i),
						Email:    fmt.Sprintf("usuario%d@example.com", i),
						Password: "x",
						Role:     constants.RoleMember,
					}
					if err := store.Update(ctx, func(w Writer) error { return w.CreateUser(u) }); err != nil {
						errs <- err
						return
					}
					mu.Lock()
					ids[u.ID] = struct{}{}
					mu.Unlock()
				}(i)
			}
			wg.Wait()
			close(errs)

			for err := range errs {
				require.NoError(t, err)
			}
			assert.Len(t, ids, writers)

			err := store.View(ctx, func(r Reader) error {
				users, err := r.Users()
				require.NoError(t, err)
				assert.Len(t, users, writers)
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestStore_ExplicitIDsAdvanceCounter(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			var next model.Project
			err := store.Update(ctx, func(w Writer) error {
				seeded := &model.Project{ID: 7, Name: "Seeded", Status: constants.ProjectPending, CreatedBy: 1, CreatedAt: time.Now()}
				if err := w.CreateProject(seeded); err != nil {
					return err
				}
				next = model.Project{Name: "Next", Status: constants.ProjectPending, CreatedBy: 1, CreatedAt: time.Now()}
				return w.CreateProject(&next)
			})
			require.NoError(t, err)
			assert.Equal(t, uint(8), next.ID)

			err = store.Update(ctx, func(w Writer) error {
				return w.CreateProject(&model.Project{ID: 7, Name: "Dup"})
			})
			assert.ErrorIs(t, err, ErrDuplicateID)
		})
	}
}

func TestStore_SaveAndDelete(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			task := &model.Task{Title: "Primera", Status: constants.StatusPending, Priority: constants.PriorityMedium, ProjectID: 1, AssignedTo: 2, DueDate: "2030-01-01"}
			require.NoError(t, store.Update(ctx, func(w Writer) error { return w.CreateTask(task) }))

			task.Status = constants.StatusCompleted
			require.NoError(t, store.Update(ctx, func(w Writer) error { return w.SaveTask(task) }))

			require.NoError(t, store.View(ctx, func(r Reader) error {
				got, err := r.Task(task.ID)
				require.NoError(t, err)
				assert.Equal(t, constants.StatusCompleted, got.Status)
				assert.Equal(t, "Primera", got.Title)
				return nil
			}))

			require.NoError(t, store.Update(ctx, func(w Writer) error { return w.DeleteTask(task.ID) }))

			err := store.Update(ctx, func(w Writer) error { return w.DeleteTask(task.ID) })
			assert.ErrorIs(t, err, ErrNotFound)

			err = store.Update(ctx, func(w Writer) error { return w.SaveTask(&model.Task{ID: 99}) })
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.View(ctx, func(r Reader) error {
				_, err := r.Task(task.ID)
				assert.ErrorIs(t, err, ErrNotFound)
				return nil
			}))
		})
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, func(w Writer) error {
		return w.CreateUser(&model.User{Name: "Ana", Role: constants.RoleMember})
	}))

	require.NoError(t, store.View(ctx, func(r Reader) error {
		u, err := r.User(1)
		require.NoError(t, err)
		u.Name = "mutated"
		return nil
	}))

	require.NoError(t, store.View(ctx, func(r Reader) error {
		u, err := r.User(1)
		require.NoError(t, err)
		assert.Equal(t, "Ana", u.Name)
		return nil
	}))
}

func TestMemoryStore_DeletedIDsAreNotReused(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, func(w Writer) error {
		if err := w.CreateUser(&model.User{Name: "A"}); err != nil {
			return err
		}
		if err := w.CreateUser(&model.User{Name: "B"}); err != nil {
			return err
		}
		return w.DeleteUser(2)
	}))

	u := &model.User{Name: "C"}
	require.NoError(t, store.Update(ctx, func(w Writer) error { return w.CreateUser(u) }))
	assert.Equal(t, uint(3), u.ID)
}

func TestStore_TasksOfProject(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, func(w Writer) error {
		for _, pid := range []uint{1, 2, 1} {
			if err := w.CreateTask(&model.Task{ProjectID: pid}); err != nil {
				return err
			}
		}
		return nil
	}))

	require.NoError(t, store.View(ctx, func(r Reader) error {
		tasks, err := TasksOfProject(r, 1)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, uint(1), tasks[0].ID)
		assert.Equal(t, uint(3), tasks[1].ID)

		missing, err := FindProject(r, 42)
		require.NoError(t, err)
		assert.Nil(t, missing)
		return nil
	}))
}
