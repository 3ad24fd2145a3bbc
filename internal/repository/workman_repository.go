package repository

import (
	"context"

	"gorm.io/gorm"

	"workboard/internal/model"
)

// WorkmanRepository defines workman persistence operations.
type WorkmanRepository interface {
	Create(ctx context.Context, workman *model.Workman) error
	Update(ctx context.Context, workman *model.Workman) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Workman, error)
	List(ctx context.Context) ([]model.Workman, error)
}

type workmanRepository struct {
	db *gorm.DB
}

// NewWorkmanRepository builds a GORM-backed repository.
func NewWorkmanRepository(db *gorm.DB) WorkmanRepository {
	return &workmanRepository{db: db}
}

func (r *workmanRepository) Create(ctx context.Context, workman *model.Workman) error {
	return r.db.WithContext(ctx).Create(workman).Error
}

func (r *workmanRepository) Update(ctx context.Context, workman *model.Workman) error {
	return r.db.WithContext(ctx).Save(workman).Error
}

func (r *workmanRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Workman{}, id).Error
}

func (r *workmanRepository) FindByID(ctx context.Context, id uint) (*model.Workman, error) {
	var workman model.Workman
	if err := r.db.WithContext(ctx).First(&workman, id).Error; err != nil {
		return nil, err
	}
	return &workman, nil
}

func (r *workmanRepository) List(ctx context.Context) ([]model.Workman, error) {
	var workmen []model.Workman
	if err := r.db.WithContext(ctx).Order("name").Find(&workmen).Error; err != nil {
		return nil, err
	}
	return workmen, nil
}
