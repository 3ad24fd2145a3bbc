package repository

import (
	"context"

	"gorm.io/gorm"

	"workboard/internal/model"
)

// UserRepository defines user and stage-permission persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ListPermissions(ctx context.Context, userID uint) ([]uint, error)
	ListAllPermissions(ctx context.Context) (map[uint][]uint, error)
	ReplacePermissions(ctx context.Context, userID uint, stageIDs []uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete removes the user and its stage permissions. Permission rows go
// first: the store has no cascading constraint for them.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", id).Delete(&model.StagePermission{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&model.User{}, id).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ListPermissions(ctx context.Context, userID uint) ([]uint, error) {
	var perms []model.StagePermission
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&perms).Error; err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(perms))
	for _, p := range perms {
		ids = append(ids, p.StageID)
	}
	return ids, nil
}

func (r *userRepository) ListAllPermissions(ctx context.Context) (map[uint][]uint, error) {
	var perms []model.StagePermission
	if err := r.db.WithContext(ctx).Find(&perms).Error; err != nil {
		return nil, err
	}
	byUser := make(map[uint][]uint, len(perms))
	for _, p := range perms {
		byUser[p.UserID] = append(byUser[p.UserID], p.StageID)
	}
	return byUser, nil
}

// ReplacePermissions swaps the user's visible-stage set. Delete-then-insert
// without a transaction: a failure between the two leaves the set partially
// applied and callers are expected to re-fetch.
func (r *userRepository) ReplacePermissions(ctx context.Context, userID uint, stageIDs []uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.StagePermission{}).Error; err != nil {
		return err
	}
	if len(stageIDs) == 0 {
		return nil
	}
	perms := make([]model.StagePermission, 0, len(stageIDs))
	for _, stageID := range stageIDs {
		perms = append(perms, model.StagePermission{UserID: userID, StageID: stageID})
	}
	return r.db.WithContext(ctx).Create(&perms).Error
}
