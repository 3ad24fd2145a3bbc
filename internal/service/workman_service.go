package service

import (
	"context"

	"gorm.io/gorm"

	"workboard/internal/errors"
	"workboard/internal/model"
	"workboard/internal/repository"
)

// WorkmanService exposes workman reference-data operations.
type WorkmanService interface {
	ListWorkmen(ctx context.Context) ([]model.Workman, error)
	CreateWorkman(ctx context.Context, workman *model.Workman) (*model.Workman, error)
	UpdateWorkman(ctx context.Context, id uint, name, email, phone string) (*model.Workman, error)
	DeleteWorkman(ctx context.Context, id uint) error
}

type workmanService struct {
	repo repository.WorkmanRepository
}

// NewWorkmanService builds a WorkmanService over the workman repository.
func NewWorkmanService(repo repository.WorkmanRepository) WorkmanService {
	return &workmanService{repo: repo}
}

func (s *workmanService) ListWorkmen(ctx context.Context) ([]model.Workman, error) {
	return s.repo.List(ctx)
}

func (s *workmanService) CreateWorkman(ctx context.Context, workman *model.Workman) (*model.Workman, error) {
	if err := s.repo.Create(ctx, workman); err != nil {
		return nil, err
	}
	return workman, nil
}

func (s *workmanService) UpdateWorkman(ctx context.Context, id uint, name, email, phone string) (*model.Workman, error) {
	workman, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrWorkmanNotFound
		}
		return nil, err
	}
	workman.Name = name
	workman.Email = email
	workman.Phone = phone
	if err := s.repo.Update(ctx, workman); err != nil {
		return nil, err
	}
	return workman, nil
}

// DeleteWorkman removes a workman. Orders keep a dangling reference and are
// treated as unassigned from then on.
func (s *workmanService) DeleteWorkman(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrWorkmanNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
