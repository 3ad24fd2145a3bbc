package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"workboard/internal/auth"
	"workboard/internal/errors"
	"workboard/internal/model"
	"workboard/internal/repository"
)

const (
	bcryptCost        = 10
	minPasswordLength = 6
)

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (token string, user *model.User, err error)
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

// RegisterInput carries the fields of an admin-driven account creation.
type RegisterInput struct {
	Username      string
	Email         string
	Password      string
	Role          model.Role
	Name          string
	VisibleStages []uint
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Login verifies credentials and issues a signed 24h token embedding the
// user's role and visible-stage set.
func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	visibleStages, err := s.userRepo.ListPermissions(ctx, user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("load stage permissions: %w", err)
	}
	user.VisibleStages = visibleStages

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

// Register creates a new account with hashed password. All validation runs
// before any row is written; stage permissions are inserted after the user
// row and a failure there is surfaced without rolling the user back.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if err := validateUserInput(input.Role, input.Password, input.VisibleStages, true); err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(ctx, input.Username, input.Email); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
		Name:         input.Name,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if len(input.VisibleStages) > 0 {
		if err := s.userRepo.ReplacePermissions(ctx, user.ID, input.VisibleStages); err != nil {
			return nil, fmt.Errorf("insert stage permissions: %w", err)
		}
	}
	user.VisibleStages = input.VisibleStages

	return user, nil
}

// Logout revokes the presented token for the remainder of its lifetime.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := auth.TokenExpiry
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return s.tokenStore.Revoke(ctx, claims.ID, ttl)
}

func (s *authService) checkDuplicate(ctx context.Context, username, email string) error {
	if existing, err := s.userRepo.FindByUsername(ctx, username); err == nil && existing != nil {
		return errors.ErrUserExists
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check username: %w", err)
	}
	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return errors.ErrUserExists
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check email: %w", err)
	}
	return nil
}

// validateUserInput enforces the account invariants shared by register and
// update: known role, password length (when one is being set), and the
// client-needs-stages rule.
func validateUserInput(role model.Role, password string, visibleStages []uint, passwordRequired bool) error {
	if !role.Valid() {
		return errors.ErrInvalidRole
	}
	if passwordRequired || password != "" {
		if len(password) < minPasswordLength {
			return errors.ErrPasswordTooShort
		}
	}
	if role == model.RoleClient && len(visibleStages) == 0 {
		return errors.ErrClientNeedsStages
	}
	return nil
}
