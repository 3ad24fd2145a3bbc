package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"workboard/internal/errors"
	"workboard/internal/model"
	"workboard/internal/repository"
)

// UserService exposes admin-gated account management.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id uint, input UpdateUserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id, callerID uint) error
}

// UpdateUserInput carries the fields of an admin edit. Password is optional;
// empty keeps the current hash.
type UpdateUserInput struct {
	Username      string
	Email         string
	Role          model.Role
	Name          string
	Password      string
	VisibleStages []uint
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService over the user repository.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	visibleStages, err := s.repo.ListPermissions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load stage permissions: %w", err)
	}
	user.VisibleStages = visibleStages
	return user, nil
}

// ListUsers returns every account with its visible-stage set attached.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	perms, err := s.repo.ListAllPermissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stage permissions: %w", err)
	}
	for i := range users {
		if ids, ok := perms[users[i].ID]; ok {
			users[i].VisibleStages = ids
		} else {
			users[i].VisibleStages = []uint{}
		}
	}
	return users, nil
}

// UpdateUser is a full replace of the account's mutable fields plus a
// wholesale swap of its stage permissions.
func (s *userService) UpdateUser(ctx context.Context, id uint, input UpdateUserInput) (*model.User, error) {
	if err := validateUserInput(input.Role, input.Password, input.VisibleStages, false); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if input.Username != user.Username {
		if existing, err := s.repo.FindByUsername(ctx, input.Username); err == nil && existing != nil {
			return nil, errors.ErrUserExists
		} else if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check username: %w", err)
		}
	}
	if input.Email != user.Email {
		if existing, err := s.repo.FindByEmail(ctx, input.Email); err == nil && existing != nil {
			return nil, errors.ErrUserExists
		} else if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check email: %w", err)
		}
	}

	user.Username = input.Username
	user.Email = input.Email
	user.Role = input.Role
	user.Name = input.Name
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if err := s.repo.ReplacePermissions(ctx, id, input.VisibleStages); err != nil {
		return nil, fmt.Errorf("replace stage permissions: %w", err)
	}
	user.VisibleStages = input.VisibleStages

	return user, nil
}

// DeleteUser removes an account. Self-deletion is forbidden.
func (s *userService) DeleteUser(ctx context.Context, id, callerID uint) error {
	if id == callerID {
		return errors.ErrSelfDelete
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
