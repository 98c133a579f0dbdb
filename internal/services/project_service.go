package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/oscar503sv/gestion-de-proyectos/internal/constants"
	apperrors "github.com/oscar503sv/gestion-de-proyectos/internal/errors"
	"github.com/oscar503sv/gestion-de-proyectos/internal/http/validators"
	model "github.com/oscar503sv/gestion-de-proyectos/internal/models"
	"github.com/oscar503sv/gestion-de-proyectos/internal/policy"
	repository "github.com/oscar503sv/gestion-de-proyectos/internal/repositories"
)

type ProjectService struct {
	store repository.Store
	log   *zap.Logger
	now   Clock
}

func NewProjectService(store repository.Store, log *zap.Logger, now Clock) *ProjectService {
	return &ProjectService{
		store: store,
		log:   log,
		now:   orNow(now),
	}
}

// ListProjects returns every project for a manager and, for a member, the
// projects where they have at least one task.
func (s *ProjectService) ListProjects(ctx context.Context, actorID uint) ([]ProjectView, error) {
	var out []ProjectView

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

		visible := policy.VisibleProjectIDs(actor, tasks)
		out = make([]ProjectView, 0, len(projects))
		for _, p := range projects {
			if visible != nil {
				if _, ok := visible[p.ID]; !ok {
					continue
				}
			}
			out = append(out, ix.project(p))
		}
		return nil
	})

	return out, err
}

func (s *ProjectService) GetProject(ctx context.Context, actorID, id uint) (*ProjectDetails, error) {
	var out *ProjectDetails

	err := s.store.View(ctx, func(r repository.Reader) error {
		actor, err := loadActor(r, actorID)
		if err != nil {
			return err
		}

		project, err := findProject(r, id)
		if err != nil {
			return err
		}

		tasks, err := r.Tasks()
		if err != nil {
			return err
		}
		if !policy.CanViewProject(actor, project, tasks) {
			return apperrors.ErrProjectAccessDenied
		}

		ix, err := newIndex(r)
		if err != nil {
			return err
		}
		out = ix.projectDetails(*project, tasksOf(tasks, project.ID))
		return nil
	})

	return out, err
}

func (s *ProjectService) CreateProject(ctx context.Context, actorID uint, b validators.Body) (*ProjectView, error) {
	var out *ProjectView

	err := s.store.Update(ctx, func(w repository.Writer) error {
		actor, err := loadActor(w, actorID)
		if err != nil {
			return err
		}

		var c validators.Collector
		if !policy.CanManageProjects(actor) {
			c.Forbid("Solo los usuarios con rol de gerente pueden crear proyectos")
		}

		now := s.now()
		f, err := validators.ProjectCreate(&c, w, b, now)
		if err != nil {
			return err
		}
		if err := c.Err(); err != nil {
			return err
		}

		project := &model.Project{
			Name:        *f.Name,
			Description: *f.Description,
			Status:      constants.ProjectPending,
			Deadline:    *f.Deadline,
			CreatedBy:   actor.ID,
			CreatedAt:   now.UTC(),
		}
		if f.Status != nil {
			project.Status = *f.Status
		}
		if f.CreatedBy != nil {
			project.CreatedBy = *f.CreatedBy
		}

		if err := w.CreateProject(project); err != nil {
			return err
		}

		ix, err := newIndex(w)
		if err != nil {
			return err
		}
		v := ix.project(*project)
		out = &v

		s.log.Info("project created",
			zap.Uint("project_id", project.ID),
			zap.Uint("requested_by", actor.ID),
		)
		return nil
	})

	return out, err
}

// UpdateProject changes only the fields present in b.
func (s *ProjectService) UpdateProject(ctx context.Context, actorID, id uint, b validators.Body) (*ProjectDetails, error) {
	var out *ProjectDetails

	err := s.store.Update(ctx, func(w repository.Writer) error {
		actor, err := loadActor(w, actorID)
		if err != nil {
			return err
		}

		project, err := findProject(w, id)
		if err != nil {
			return err
		}

		var c validators.Collector
		if !policy.CanManageProjects(actor) {
			c.Forbid("Solo los usuarios con rol de gerente pueden actualizar proyectos")
		}

		f, err := validators.ProjectUpdate(&c, w, b, project, s.now())
		if err != nil {
			return err
		}
		if err := c.Err(); err != nil {
			return err
		}

		if f.Name != nil {
			project.Name = *f.Name
		}
		if f.Description != nil {
			project.Description = *f.Description
		}
		if f.Status != nil {
			project.Status = *f.Status
		}
		if f.Deadline != nil {
			project.Deadline = *f.Deadline
		}
		if f.CreatedBy != nil {
			project.CreatedBy = *f.CreatedBy
		}

		if err := w.SaveProject(project); err != nil {
			return err
		}

		tasks, err := repository.TasksOfProject(w, project.ID)
		if err != nil {
			return err
		}
		ix, err := newIndex(w)
		if err != nil {
			return err
		}
		out = ix.projectDetails(*project, tasks)

		s.log.Info("project updated",
			zap.Uint("project_id", project.ID),
			zap.Uint("requested_by", actor.ID),
			zap.Strings("fields", b.Keys()),
		)
		return nil
	})

	return out, err
}

// DeleteProject removes a project when the deletion policy allows it and
// reports the blocking tasks otherwise.
func (s *ProjectService) DeleteProject(ctx context.Context, actorID, id uint) (*DeletedProject, error) {
	var out *DeletedProject

	err := s.store.Update(ctx, func(w repository.Writer) error {
		actor, err := loadActor(w, actorID)
		if err != nil {
			return err
		}

		project, err := findProject(w, id)
		if err != nil {
			return err
		}

		var c validators.Collector
		if !policy.CanManageProjects(actor) {
			c.Forbid("Solo los usuarios con rol de gerente pueden eliminar proyectos")
		}
		if err := c.Err(); err != nil {
			return err
		}

		tasks, err := repository.TasksOfProject(w, project.ID)
		if err != nil {
			return err
		}

		verdict := policy.EvaluateProjectDeletion(project, tasks)
		if !verdict.Allowed {
			summary := make([]TaskSummary, 0, len(tasks))
			for _, t := range tasks {
				summary = append(summary, TaskSummary{ID: t.ID, Title: t.Title, Status: t.Status, AssignedTo: t.AssignedTo})
			}
			return apperrors.Conflict(verdict.Message, ProjectDeletionConflict{
				Details:             verdict.Details,
				ProjectStatus:       project.Status,
				TasksCount:          verdict.TasksCount,
				CompletedTasksCount: verdict.CompletedCount,
				AssociatedTasks:     summary,
			})
		}

		if err := w.DeleteProject(project.ID); err != nil {
			return err
		}

		out = &DeletedProject{
			ID:          project.ID,
			Name:        project.Name,
			Description: project.Description,
			Status:      project.Status,
		}

		s.log.Info("project deleted",
			zap.Uint("project_id", project.ID),
			zap.Uint("requested_by", actor.ID),
		)
		return nil
	})

	return out, err
}

// ProjectTasks lists a project's tasks with due-date flags and statistics.
// Members only see their own tasks and only in projects they take part in.
func (s *ProjectService) ProjectTasks(ctx context.Context, actorID, id uint, filter TaskFilter) (*ProjectTasks, error) {
	var out *ProjectTasks

	err := s.store.View(ctx, func(r repository.Reader) error {
		actor, err := loadActor(r, actorID)
		if err != nil {
			return err
		}

		project, err := findProject(r, id)
		if err != nil {
			return err
		}

		all, err := r.Tasks()
		if err != nil {
			return err
		}
		if !policy.CanViewProject(actor, project, all) {
			return apperrors.ErrProjectTasksAccessDenied
		}

		ix, err := newIndex(r)
		if err != nil {
			return err
		}

		now := s.now()
		res := &ProjectTasks{
			Project: ix.project(*project),
			Tasks:   []ProjectTaskView{},
			Filters: filter,
		}

		for _, t := range tasksOf(all, project.ID) {
			if !policy.CanViewTask(actor, &t) || !filter.matches(&t) {
				continue
			}

			sched := scheduleOf(&t, now)
			res.Tasks = append(res.Tasks, ProjectTaskView{
				Task:           t,
				AssignedToUser: ix.user(t.AssignedTo),
				DaysUntilDue:   sched.DaysUntilDue,
				IsOverdue:      sched.Overdue,
				IsDueSoon:      sched.DueSoon,
			})

			switch t.Status {
			case constants.StatusPending:
				res.Statistics.Pending++
			case constants.StatusInProgress:
				res.Statistics.InProgress++
			case constants.StatusCompleted:
				res.Statistics.Completed++
			}
			if sched.Overdue {
				res.Statistics.Overdue++
			}
			if sched.DueSoon {
				res.Statistics.DueSoon++
			}
		}

		res.Statistics.Total = len(res.Tasks)
		res.Statistics.ProgressPercentage = percent(res.Statistics.Completed, res.Statistics.Total)
		out = res
		return nil
	})

	return out, err
}

func (f TaskFilter) matches(t *model.Task) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	if f.AssignedTo != nil && t.AssignedTo != *f.AssignedTo {
		return false
	}
	return true
}

func findProject(r repository.Reader, id uint) (*model.Project, error) {
	project, err := repository.FindProject(r, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperrors.ErrProjectNotFound
	}
	return project, nil
}

func tasksOf(tasks []model.Task, projectID uint) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}
