package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/oscar503sv/gestion-de-proyectos/internal/auth"
	apperrors "github.com/oscar503sv/gestion-de-proyectos/internal/errors"
	"github.com/oscar503sv/gestion-de-proyectos/internal/http/validators"
	repository "github.com/oscar503sv/gestion-de-proyectos/internal/repositories"
)

type AuthService struct {
	store  repository.Store
	hasher *auth.PasswordHasher
	log    *zap.Logger
}

func NewAuthService(store repository.Store, hasher *auth.PasswordHasher, log *zap.Logger) *AuthService {
	return &AuthService{
		store:  store,
		hasher: hasher,
		log:    log,
	}
}

// Login checks the credentials and hands back an opaque session token. The
// token is not verified anywhere; clients echo the user id as requestedBy.
func (s *AuthService) Login(ctx context.Context, b validators.Body) (*LoginResult, error) {
	var c validators.Collector
	cred := validators.Login(&c, b)
	if err := c.Err(); err != nil {
		return nil, err
	}

	var out *LoginResult
	err := s.store.View(ctx, func(r repository.Reader) error {
		users, err := r.Users()
		if err != nil {
			return err
		}

		for i := range users {
			u := &users[i]
			if !u.HasEmail(cred.Email) {
				continue
			}
			if !s.hasher.Matches(u.Password, cred.Password) {
				break
			}
			out = &LoginResult{User: u, SessionToken: auth.NewSessionToken(u.ID)}
			return nil
		}

		s.log.Info("login rejected", zap.String("email", cred.Email))
		return apperrors.ErrInvalidCredentials
	})

	return out, err
}
