package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/oscar503sv/gestion-de-proyectos/internal/constants"
	apperrors "github.com/oscar503sv/gestion-de-proyectos/internal/errors"
	"github.com/oscar503sv/gestion-de-proyectos/internal/http/validators"
	model "github.com/oscar503sv/gestion-de-proyectos/internal/models"
	"github.com/oscar503sv/gestion-de-proyectos/internal/policy"
	repository "github.com/oscar503sv/gestion-de-proyectos/internal/repositories"
)

type TaskService struct {
	store repository.Store
	log   *zap.Logger
	now   Clock
}

func NewTaskService(store repository.Store, log *zap.Logger, now Clock) *TaskService {
	return &TaskService{
		store: store,
		log:   log,
		now:   orNow(now),
	}
}

func (s *TaskService) ListTasks(ctx context.Context, actorID uint) ([]TaskView, error) {
	var out []TaskView

	err := s.store.View(ctx, func(r repository.Reader) error {
		actor, err := loadActor(r, actorID)
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

		out = make([]TaskView, 0, len(tasks))
		for i := range tasks {
			if policy.CanViewTask(actor, &tasks[i]) {
				out = append(out, ix.task(tasks[i]))
			}
		}
		return nil
	})

	return out, err
}

// GetTask returns one task. A member asking for a task that is not theirs
// gets the same 403 whether or not it exists.
func (s *TaskService) GetTask(ctx context.Context, actorID, id uint) (*TaskView, error) {
	var out *TaskView

	err := s.store.View(ctx, func(r repository.Reader) error {
		actor, err := loadActor(r, actorID)
		if err != nil {
			return err
		}

		task, err := r.Task(id)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if !policy.CanViewTask(actor, task) {
			return apperrors.ErrTaskAccessDenied
		}
		if task == nil {
			return apperrors.ErrTaskNotFound
		}

		ix, err := newIndex(r)
		if err != nil {
			return err
		}
		v := ix.task(*task)
		out = &v
		return nil
	})

	return out, err
}

func (s *TaskService) CreateTask(ctx context.Context, actorID uint, b validators.Body) (*TaskView, error) {
	var out *TaskView

	err := s.store.Update(ctx, func(w repository.Writer) error {
		actor, err := loadActor(w, actorID)
		if err != nil {
			return err
		}

		var c validators.Collector
		if !policy.CanManageTasks(actor) {
			c.Forbid("Solo los usuarios con rol de gerente pueden crear tareas")
		}

		now := s.now()
		f, err := validators.TaskCreate(&c, w, b, now)
		if err != nil {
			return err
		}
		if err := c.Err(); err != nil {
			return err
		}

		task := &model.Task{
			Title:       *f.Title,
			Description: *f.Description,
			Status:      constants.StatusPending,
			Priority:    constants.PriorityMedium,
			ProjectID:   *f.ProjectID,
			AssignedTo:  *f.AssignedTo,
			CreatedAt:   now.UTC(),
			DueDate:     *f.DueDate,
		}
		if f.Status != nil {
			task.Status = *f.Status
		}
		if f.Priority != nil {
			task.Priority = *f.Priority
		}

		if err := w.CreateTask(task); err != nil {
			return err
		}

		ix, err := newIndex(w)
		if err != nil {
			return err
		}
		v := ix.task(*task)
		out = &v

		s.log.Info("task created",
			zap.Uint("task_id", task.ID),
			zap.Uint("project_id", task.ProjectID),
			zap.Uint("assigned_to", task.AssignedTo),
			zap.Uint("requested_by", actor.ID),
		)
		return nil
	})

	return out, err
}

// UpdateTask applies a partial update. Managers may change any field; the
// assigned member may change only the status.
func (s *TaskService) UpdateTask(ctx context.Context, actorID, id uint, b validators.Body) (*TaskView, error) {
	var out *TaskView

	err := s.store.Update(ctx, func(w repository.Writer) error {
		actor, err := loadActor(w, actorID)
		if err != nil {
			return err
		}

		task, err := findTask(w, id)
		if err != nil {
			return err
		}

		var c validators.Collector
		if !actor.IsManager() {
			switch {
			case !policy.CanUpdateTask(actor, task):
				c.Forbid("Solo puedes actualizar tareas que te han sido asignadas")
			case !statusOnly(b):
				c.Add("Solo puedes actualizar el estado de tus tareas asignadas")
			}
		}

		f, err := validators.TaskUpdate(&c, w, b, s.now())
		if err != nil {
			return err
		}
		if err := c.Err(); err != nil {
			return err
		}

		if f.Title != nil {
			task.Title = *f.Title
		}
		if f.Description != nil {
			task.Description = *f.Description
		}
		if f.Status != nil {
			task.Status = *f.Status
		}
		if f.Priority != nil {
			task.Priority = *f.Priority
		}
		if f.ProjectID != nil {
			task.ProjectID = *f.ProjectID
		}
		if f.AssignedTo != nil {
			task.AssignedTo = *f.AssignedTo
		}
		if f.DueDate != nil {
			task.DueDate = *f.DueDate
		}

		if err := w.SaveTask(task); err != nil {
			return err
		}

		ix, err := newIndex(w)
		if err != nil {
			return err
		}
		v := ix.task(*task)
		out = &v

		s.log.Info("task updated",
			zap.Uint("task_id", task.ID),
			zap.Uint("requested_by", actor.ID),
			zap.Strings("fields", b.Keys()),
		)
		return nil
	})

	return out, err
}

func (s *TaskService) DeleteTask(ctx context.Context, actorID, id uint) (*DeletedTask, error) {
	var out *DeletedTask

	err := s.store.Update(ctx, func(w repository.Writer) error {
		actor, err := loadActor(w, actorID)
		if err != nil {
			return err
		}

		task, err := findTask(w, id)
		if err != nil {
			return err
		}

		var c validators.Collector
		if !policy.CanManageTasks(actor) {
			c.Forbid("Solo los usuarios con rol de gerente pueden eliminar tareas")
		}
		if err := c.Err(); err != nil {
			return err
		}

		if err := w.DeleteTask(task.ID); err != nil {
			return err
		}

		out = &DeletedTask{
			ID:        task.ID,
			Title:     task.Title,
			Status:    task.Status,
			ProjectID: task.ProjectID,
		}

		s.log.Info("task deleted",
			zap.Uint("task_id", task.ID),
			zap.Uint("requested_by", actor.ID),
		)
		return nil
	})

	return out, err
}

func findTask(r repository.Reader, id uint) (*model.Task, error) {
	task, err := r.Task(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrTaskNotFound
	}
	return task, err
}

func statusOnly(b validators.Body) bool {
	for key := range b {
		if _, ok := policy.StatusOnlyFields[key]; !ok {
			return false
		}
	}
	return true
}
