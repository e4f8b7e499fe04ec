package service

import (
	"context"
	"errors"
	"time"

	"github.com/compressorworks/crm/internal/domain"
	"github.com/compressorworks/crm/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen is the shortest password Create accepts.
const MinPasswordLen = 6

type userService struct {
	users    repository.UserRepo
	observer UseCaseObserver
}

func NewUserService(users repository.UserRepo, observers ...UseCaseObserver) UserService {
	return &userService{users: users, observer: useCaseObserverOrNoop(observers)}
}

func (s *userService) Create(ctx context.Context, u *domain.User, password string) (err error) {
	defer observe(ctx, s.observer, "create-user", time.Now().UTC(), map[string]any{"role": string(u.Role)}, &err)

	if err = u.Validate(); err != nil {
		return err
	}
	if len(password) < MinPasswordLen {
		return domain.NewValidationError("password", domain.ErrInvalidValue)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	u.ID = uuid.New().String()
	u.PasswordHash = string(hash)
	u.Active = true
	u.CreatedAt = now
	u.UpdatedAt = now
	return classifyStoreErr("creating user", s.users.Create(ctx, u))
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, classifyStoreErr("listing users", err)
	}
	return users, nil
}

// Authenticate returns the active user matching login and password.
// Unknown logins, wrong passwords and inactive users all yield
// ErrInvalidCredentials.
func (s *userService) Authenticate(ctx context.Context, login, password string) (u *domain.User, err error) {
	defer observe(ctx, s.observer, "authenticate", time.Now().UTC(), map[string]any{}, &err)

	u, err = s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, classifyStoreErr("loading user", err)
	}
	if !u.Active {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}
