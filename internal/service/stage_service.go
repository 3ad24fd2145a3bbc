package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"workboard/internal/cache"
	"workboard/internal/errors"
	"workboard/internal/model"
	"workboard/internal/repository"
)

const (
	stageCacheKey = "stages"
	stageCacheTTL = 5 * time.Minute
)

// ReorderResult reports the outcome of one position write within a reorder
// batch. Writes are independent; a failed item does not undo the others.
type ReorderResult struct {
	StageID  uint   `json:"stage_id"`
	Position int    `json:"position"`
	Error    string `json:"error,omitempty"`
}

// StageService exposes pipeline stage operations.
type StageService interface {
	ListStages(ctx context.Context) ([]model.Stage, error)
	ListVisibleStages(ctx context.Context, role model.Role, visibleStageIDs []uint) ([]model.Stage, error)
	CreateStage(ctx context.Context, title string) (*model.Stage, error)
	UpdateStage(ctx context.Context, id uint, title string, position int) (*model.Stage, error)
	ReorderStages(ctx context.Context, orderedIDs []uint) ([]ReorderResult, error)
	DeleteStage(ctx context.Context, id uint) error
}

type stageService struct {
	repo      repository.StageRepository
	orderRepo repository.OrderRepository
	cache     *cache.Client
	policy    *AccessPolicy
}

// NewStageService creates a new stage service.
func NewStageService(repo repository.StageRepository, orderRepo repository.OrderRepository, cache *cache.Client, policy *AccessPolicy) StageService {
	return &stageService{
		repo:      repo,
		orderRepo: orderRepo,
		cache:     cache,
		policy:    policy,
	}
}

// ListStages returns all stages in display order, served from cache when warm.
func (s *stageService) ListStages(ctx context.Context) ([]model.Stage, error) {
	if data, _ := s.cache.Get(ctx, stageCacheKey); data != nil {
		var cached []model.Stage
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	stages, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(stages); err == nil {
		_ = s.cache.Set(ctx, stageCacheKey, payload, stageCacheTTL)
	}
	return stages, nil
}

// ListVisibleStages narrows the stage list through the access policy. The
// user-role fallback needs the current orders, fetched only when required.
func (s *stageService) ListVisibleStages(ctx context.Context, role model.Role, visibleStageIDs []uint) ([]model.Stage, error) {
	stages, err := s.ListStages(ctx)
	if err != nil {
		return nil, err
	}

	var orders []model.OrderDetail
	if role == model.RoleUser && len(visibleStageIDs) == 0 {
		orders, err = s.orderRepo.List(ctx)
		if err != nil {
			return nil, err
		}
	}
	return s.policy.VisibleStages(role, visibleStageIDs, stages, orders), nil
}

// CreateStage appends a stage after the current last position.
func (s *stageService) CreateStage(ctx context.Context, title string) (*model.Stage, error) {
	max, err := s.repo.MaxPosition(ctx)
	if err != nil {
		return nil, fmt.Errorf("max position: %w", err)
	}

	stage := &model.Stage{Title: title, Position: max + 1}
	if err := s.repo.Create(ctx, stage); err != nil {
		return nil, fmt.Errorf("create stage: %w", err)
	}
	s.invalidate(ctx)
	return stage, nil
}

func (s *stageService) UpdateStage(ctx context.Context, id uint, title string, position int) (*model.Stage, error) {
	stage, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrStageNotFound
		}
		return nil, err
	}
	stage.Title = title
	stage.Position = position
	if err := s.repo.Update(ctx, stage); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return stage, nil
}

// ReorderStages overwrites every position with the stage's index in the given
// sequence, 0-based. The writes are dispatched in parallel and joined; a
// failed item is reported in its result and rolls back nothing, so callers
// should re-fetch on error. Last writer wins under concurrent reorders.
func (s *stageService) ReorderStages(ctx context.Context, orderedIDs []uint) ([]ReorderResult, error) {
	stages, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[uint]bool, len(stages))
	for _, st := range stages {
		known[st.ID] = true
	}
	for _, id := range orderedIDs {
		if !known[id] {
			return nil, errors.ErrStageNotFound
		}
	}

	results := make([]ReorderResult, len(orderedIDs))
	var wg sync.WaitGroup
	for i, id := range orderedIDs {
		wg.Add(1)
		go func(i int, id uint) {
			defer wg.Done()
			res := ReorderResult{StageID: id, Position: i}
			if err := s.repo.UpdatePosition(ctx, id, i); err != nil {
				res.Error = err.Error()
			}
			results[i] = res
		}(i, id)
	}
	wg.Wait()
	s.invalidate(ctx)

	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return results, fmt.Errorf("reorder stages: %d of %d position updates failed", failed, len(orderedIDs))
	}
	return results, nil
}

// DeleteStage removes a stage unless orders still reference it.
func (s *stageService) DeleteStage(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrStageNotFound
		}
		return err
	}

	count, err := s.orderRepo.CountByStage(ctx, id)
	if err != nil {
		return fmt.Errorf("count stage orders: %w", err)
	}
	if count > 0 {
		return errors.ErrStageHasOrders
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *stageService) invalidate(ctx context.Context) {
	_ = s.cache.Delete(ctx, stageCacheKey)
}
