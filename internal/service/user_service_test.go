package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "workboard/internal/errors"
	"workboard/internal/model"
)

func TestUserService_ListUsers_AttachesPermissions(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("List", mock.Anything).Return([]model.User{
		{ID: 1, Username: "admin"},
		{ID: 2, Username: "maria"},
	}, nil)
	userRepo.On("ListAllPermissions", mock.Anything).Return(map[uint][]uint{
		2: {3, 4},
	}, nil)

	users, err := svc.ListUsers(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []uint{}, users[0].VisibleStages)
	assert.Equal(t, []uint{3, 4}, users[1].VisibleStages)
}

func TestUserService_UpdateUser(t *testing.T) {
	t.Run("keeps hash when password left empty", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		userRepo.On("FindByID", mock.Anything, uint(2)).Return(&model.User{
			ID: 2, Username: "maria", Email: "maria@x.com", Role: model.RoleUser, PasswordHash: "keep-me",
		}, nil)
		userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.PasswordHash == "keep-me" && u.Name == "Maria K"
		})).Return(nil)
		userRepo.On("ReplacePermissions", mock.Anything, uint(2), []uint(nil)).Return(nil)

		_, err := svc.UpdateUser(context.Background(), 2, UpdateUserInput{
			Username: "maria", Email: "maria@x.com", Role: model.RoleUser, Name: "Maria K",
		})

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("rehashes when a new password is given", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		userRepo.On("FindByID", mock.Anything, uint(2)).Return(&model.User{
			ID: 2, Username: "maria", Email: "maria@x.com", Role: model.RoleUser, PasswordHash: "old",
		}, nil)
		userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("fresh-pass")) == nil
		})).Return(nil)
		userRepo.On("ReplacePermissions", mock.Anything, uint(2), []uint(nil)).Return(nil)

		_, err := svc.UpdateUser(context.Background(), 2, UpdateUserInput{
			Username: "maria", Email: "maria@x.com", Role: model.RoleUser, Password: "fresh-pass",
		})

		assert.NoError(t, err)
	})

	t.Run("username collision with another account", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		userRepo.On("FindByID", mock.Anything, uint(2)).Return(&model.User{
			ID: 2, Username: "maria", Email: "maria@x.com", Role: model.RoleUser,
		}, nil)
		userRepo.On("FindByUsername", mock.Anything, "admin").Return(&model.User{ID: 1, Username: "admin"}, nil)

		_, err := svc.UpdateUser(context.Background(), 2, UpdateUserInput{
			Username: "admin", Email: "maria@x.com", Role: model.RoleUser,
		})

		assert.ErrorIs(t, err, apperrors.ErrUserExists)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("demoting to client without stages is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		_, err := svc.UpdateUser(context.Background(), 2, UpdateUserInput{
			Username: "maria", Email: "maria@x.com", Role: model.RoleClient,
		})

		assert.ErrorIs(t, err, apperrors.ErrClientNeedsStages)
		userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Run("self-deletion is forbidden", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		err := svc.DeleteUser(context.Background(), 1, 1)

		assert.ErrorIs(t, err, apperrors.ErrSelfDelete)
		userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes another account", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		userRepo.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2}, nil)
		userRepo.On("Delete", mock.Anything, uint(2)).Return(nil)

		err := svc.DeleteUser(context.Background(), 2, 1)

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("missing account", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo)

		userRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		err := svc.DeleteUser(context.Background(), 99, 1)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
