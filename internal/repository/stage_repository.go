package repository

import (
	"context"

	"gorm.io/gorm"

	"workboard/internal/model"
)

// StageRepository defines stage persistence operations.
type StageRepository interface {
	Create(ctx context.Context, stage *model.Stage) error
	Update(ctx context.Context, stage *model.Stage) error
	UpdatePosition(ctx context.Context, id uint, position int) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Stage, error)
	List(ctx context.Context) ([]model.Stage, error)
	MaxPosition(ctx context.Context) (int, error)
}

type stageRepository struct {
	db *gorm.DB
}

// NewStageRepository builds a GORM-backed repository.
func NewStageRepository(db *gorm.DB) StageRepository {
	return &stageRepository{db: db}
}

func (r *stageRepository) Create(ctx context.Context, stage *model.Stage) error {
	return r.db.WithContext(ctx).Create(stage).Error
}

func (r *stageRepository) Update(ctx context.Context, stage *model.Stage) error {
	return r.db.WithContext(ctx).Save(stage).Error
}

func (r *stageRepository) UpdatePosition(ctx context.Context, id uint, position int) error {
	return r.db.WithContext(ctx).Model(&model.Stage{}).
		Where("id = ?", id).
		Update("position", position).Error
}

func (r *stageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Stage{}, id).Error
}

func (r *stageRepository) FindByID(ctx context.Context, id uint) (*model.Stage, error) {
	var stage model.Stage
	if err := r.db.WithContext(ctx).First(&stage, id).Error; err != nil {
		return nil, err
	}
	return &stage, nil
}

// List returns all stages in display order.
func (r *stageRepository) List(ctx context.Context) ([]model.Stage, error) {
	var stages []model.Stage
	if err := r.db.WithContext(ctx).Order("position").Find(&stages).Error; err != nil {
		return nil, err
	}
	return stages, nil
}

// MaxPosition returns the highest position in use, or -1 when no stages exist.
func (r *stageRepository) MaxPosition(ctx context.Context) (int, error) {
	var max *int
	if err := r.db.WithContext(ctx).Model(&model.Stage{}).
		Select("MAX(position)").Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}
