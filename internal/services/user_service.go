package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/oscar503sv/gestion-de-proyectos/internal/auth"
	apperrors "github.com/oscar503sv/gestion-de-proyectos/internal/errors"
	"github.com/oscar503sv/gestion-de-proyectos/internal/http/validators"
	model "github.com/oscar503sv/gestion-de-proyectos/internal/models"
	"github.com/oscar503sv/gestion-de-proyectos/internal/policy"
	repository "github.com/oscar503sv/gestion-de-proyectos/internal/repositories"
)

type UserService struct {
	store  repository.Store
	hasher *auth.PasswordHasher
	log    *zap.Logger
}

func NewUserService(store repository.Store, hasher *auth.PasswordHasher, log *zap.Logger) *UserService {
	return &UserService{
		store:  store,
		hasher: hasher,
		log:    log,
	}
}

// ListUsers is open to any known requester; the directory feeds assignment
// pickers.
func (s *UserService) ListUsers(ctx context.Context, actorID uint) ([]model.User, error) {
	var out []model.User

	err := s.store.View(ctx, func(r repository.Reader) error {
		if _, err := loadActor(r, actorID); err != nil {
			return err
		}

		users, err := r.Users()
		if err != nil {
			return err
		}
		out = users
		return nil
	})

	return out, err
}

func (s *UserService) GetUser(ctx context.Context, actorID, id uint) (*model.User, error) {
	var out *model.User

	err := s.store.View(ctx, func(r repository.Reader) error {
		if _, err := loadActor(r, actorID); err != nil {
			return err
		}

		user, err := findUser(r, id)
		if err != nil {
			return err
		}
		out = user
		return nil
	})

	return out, err
}

// RegisterUser creates an account. It is the only write that does not need
// a requester.
func (s *UserService) RegisterUser(ctx context.Context, b validators.Body) (*model.User, error) {
	var out *model.User

	err := s.store.Update(ctx, func(w repository.Writer) error {
		var c validators.Collector
		f, err := validators.UserCreate(&c, w, b)
		if err != nil {
			return err
		}
		if err := c.Err(); err != nil {
			return err
		}

		hash, err := s.hasher.Hash(*f.Password)
		if err != nil {
			return err
		}

		user := &model.User{
			Name:     *f.Name,
			Email:    *f.Email,
			Password: hash,
			Role:     *f.Role,
		}
		if err := w.CreateUser(user); err != nil {
			return err
		}
		out = user

		s.log.Info("user registered",
			zap.Uint("user_id", user.ID),
			zap.String("role", string(user.Role)),
		)
		return nil
	})

	return out, err
}

// UpdateUser lets users edit their own profile and managers edit anyone.
// Only managers may change a role.
func (s *UserService) UpdateUser(ctx context.Context, actorID, id uint, b validators.Body) (*model.User, error) {
	var out *model.User

	err := s.store.Update(ctx, func(w repository.Writer) error {
		actor, err := loadActor(w, actorID)
		if err != nil {
			return err
		}

		user, err := findUser(w, id)
		if err != nil {
			return err
		}

		var c validators.Collector
		if !policy.CanEditUser(actor, user) {
			c.Forbid("Solo puedes actualizar tu propio perfil")
		}
		if b.Has("role") && !policy.CanChangeRole(actor) {
			c.Forbid("Solo los usuarios con rol de gerente pueden cambiar roles")
		}

		f, err := validators.UserUpdate(&c, w, b, user)
		if err != nil {
			return err
		}
		if err := c.Err(); err != nil {
			return err
		}

		if f.Name != nil {
			user.Name = *f.Name
		}
		if f.Email != nil {
			user.Email = *f.Email
		}
		if f.Role != nil {
			user.Role = *f.Role
		}
		if f.Password != nil {
			hash, err := s.hasher.Hash(*f.Password)
			if err != nil {
				return err
			}
			user.Password = hash
		}

		if err := w.SaveUser(user); err != nil {
			return err
		}
		out = user

		s.log.Info("user updated",
			zap.Uint("user_id", user.ID),
			zap.Uint("requested_by", actor.ID),
			zap.Strings("fields", b.Keys()),
		)
		return nil
	})

	return out, err
}

// DeleteUser refuses while the user still created projects or has tasks.
func (s *UserService) DeleteUser(ctx context.Context, actorID, id uint) (*DeletedUser, error) {
	var out *DeletedUser

	err := s.store.Update(ctx, func(w repository.Writer) error {
		actor, err := loadActor(w, actorID)
		if err != nil {
			return err
		}

		user, err := findUser(w, id)
		if err != nil {
			return err
		}

		var c validators.Collector
		if !policy.CanDeleteUser(actor) {
			c.Forbid("Solo los usuarios con rol de gerente pueden eliminar usuarios")
		}
		if err := c.Err(); err != nil {
			return err
		}

		projects, err := w.Projects()
		if err != nil {
			return err
		}
		tasks, err := w.Tasks()
		if err != nil {
			return err
		}

		deps := policy.CountUserDependents(user.ID, projects, tasks)
		if deps.Blocking() {
			return apperrors.Conflict("No se puede eliminar el usuario", UserDeletionConflict{
				Details:        []string{"El usuario tiene proyectos creados o tareas asignadas"},
				UserDependents: deps,
			})
		}

		if err := w.DeleteUser(user.ID); err != nil {
			return err
		}
		out = &DeletedUser{ID: user.ID, Name: user.Name, Email: user.Email}

		s.log.Info("user deleted",
			zap.Uint("user_id", user.ID),
			zap.Uint("requested_by", actor.ID),
		)
		return nil
	})

	return out, err
}

func findUser(r repository.Reader, id uint) (*model.User, error) {
	user, err := r.User(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	return user, err
}
