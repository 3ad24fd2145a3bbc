package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "workboard/internal/errors"
	"workboard/internal/model"
)

func newTestStageService(stageRepo *MockStageRepository, orderRepo *MockOrderRepository) *stageService {
	return &stageService{
		repo:      stageRepo,
		orderRepo: orderRepo,
		cache:     nil, // degrades to a permanent cache miss
		policy:    NewAccessPolicy(),
	}
}

func TestStageService_CreateStage(t *testing.T) {
	tests := []struct {
		name             string
		maxPosition      int
		expectedPosition int
	}{
		{name: "appends after the last stage", maxPosition: 4, expectedPosition: 5},
		{name: "first stage lands at zero", maxPosition: -1, expectedPosition: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stageRepo := new(MockStageRepository)
			svc := newTestStageService(stageRepo, new(MockOrderRepository))

			stageRepo.On("MaxPosition", mock.Anything).Return(tt.maxPosition, nil)
			stageRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *model.Stage) bool {
				return s.Title == "Varnishing" && s.Position == tt.expectedPosition
			})).Return(nil)

			stage, err := svc.CreateStage(context.Background(), "Varnishing")

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedPosition, stage.Position)
			stageRepo.AssertExpectations(t)
		})
	}
}

func TestStageService_ReorderStages(t *testing.T) {
	stages := []model.Stage{
		{ID: 1, Title: "Received", Position: 0},
		{ID: 2, Title: "Design", Position: 1},
		{ID: 3, Title: "Assembly", Position: 2},
	}

	t.Run("positions follow the given sequence", func(t *testing.T) {
		stageRepo := new(MockStageRepository)
		svc := newTestStageService(stageRepo, new(MockOrderRepository))

		stageRepo.On("List", mock.Anything).Return(stages, nil)
		stageRepo.On("UpdatePosition", mock.Anything, uint(3), 0).Return(nil)
		stageRepo.On("UpdatePosition", mock.Anything, uint(1), 1).Return(nil)
		stageRepo.On("UpdatePosition", mock.Anything, uint(2), 2).Return(nil)

		results, err := svc.ReorderStages(context.Background(), []uint{3, 1, 2})

		assert.NoError(t, err)
		assert.Equal(t, []ReorderResult{
			{StageID: 3, Position: 0},
			{StageID: 1, Position: 1},
			{StageID: 2, Position: 2},
		}, results)
		stageRepo.AssertExpectations(t)
	})

	t.Run("unknown stage id aborts before any write", func(t *testing.T) {
		stageRepo := new(MockStageRepository)
		svc := newTestStageService(stageRepo, new(MockOrderRepository))

		stageRepo.On("List", mock.Anything).Return(stages, nil)

		_, err := svc.ReorderStages(context.Background(), []uint{3, 1, 99})

		assert.ErrorIs(t, err, apperrors.ErrStageNotFound)
		stageRepo.AssertNotCalled(t, "UpdatePosition", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failed item is reported without undoing the rest", func(t *testing.T) {
		stageRepo := new(MockStageRepository)
		svc := newTestStageService(stageRepo, new(MockOrderRepository))

		stageRepo.On("List", mock.Anything).Return(stages, nil)
		stageRepo.On("UpdatePosition", mock.Anything, uint(3), 0).Return(nil)
		stageRepo.On("UpdatePosition", mock.Anything, uint(1), 1).Return(gorm.ErrInvalidDB)
		stageRepo.On("UpdatePosition", mock.Anything, uint(2), 2).Return(nil)

		results, err := svc.ReorderStages(context.Background(), []uint{3, 1, 2})

		assert.Error(t, err)
		assert.Len(t, results, 3)
		assert.Empty(t, results[0].Error)
		assert.NotEmpty(t, results[1].Error)
		assert.Empty(t, results[2].Error)
	})
}

func TestStageService_DeleteStage(t *testing.T) {
	t.Run("blocked while orders reference the stage", func(t *testing.T) {
		stageRepo := new(MockStageRepository)
		orderRepo := new(MockOrderRepository)
		svc := newTestStageService(stageRepo, orderRepo)

		stageRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Stage{ID: 1}, nil)
		orderRepo.On("CountByStage", mock.Anything, uint(1)).Return(int64(2), nil)

		err := svc.DeleteStage(context.Background(), 1)

		assert.ErrorIs(t, err, apperrors.ErrStageHasOrders)
		stageRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("empty stage deletes", func(t *testing.T) {
		stageRepo := new(MockStageRepository)
		orderRepo := new(MockOrderRepository)
		svc := newTestStageService(stageRepo, orderRepo)

		stageRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Stage{ID: 1}, nil)
		orderRepo.On("CountByStage", mock.Anything, uint(1)).Return(int64(0), nil)
		stageRepo.On("Delete", mock.Anything, uint(1)).Return(nil)

		err := svc.DeleteStage(context.Background(), 1)

		assert.NoError(t, err)
		stageRepo.AssertExpectations(t)
	})

	t.Run("missing stage", func(t *testing.T) {
		stageRepo := new(MockStageRepository)
		svc := newTestStageService(stageRepo, new(MockOrderRepository))

		stageRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		err := svc.DeleteStage(context.Background(), 99)

		assert.ErrorIs(t, err, apperrors.ErrStageNotFound)
	})
}

func TestStageService_ListVisibleStages_UserFallbackFetchesOrders(t *testing.T) {
	stageRepo := new(MockStageRepository)
	orderRepo := new(MockOrderRepository)
	svc := newTestStageService(stageRepo, orderRepo)

	stages := []model.Stage{
		{ID: 1, Title: "Received", Position: 0},
		{ID: 2, Title: "Design", Position: 1},
	}
	stageRepo.On("List", mock.Anything).Return(stages, nil)
	orderRepo.On("List", mock.Anything).Return([]model.OrderDetail{
		{Order: model.Order{ID: 1, StageID: 2}},
	}, nil)

	visible, err := svc.ListVisibleStages(context.Background(), model.RoleUser, nil)

	assert.NoError(t, err)
	assert.Len(t, visible, 1)
	assert.Equal(t, uint(2), visible[0].ID)
	orderRepo.AssertExpectations(t)
}

func TestStageService_ListVisibleStages_ClientSkipsOrderFetch(t *testing.T) {
	stageRepo := new(MockStageRepository)
	orderRepo := new(MockOrderRepository)
	svc := newTestStageService(stageRepo, orderRepo)

	stageRepo.On("List", mock.Anything).Return([]model.Stage{
		{ID: 1, Title: "Received", Position: 0},
		{ID: 2, Title: "Design", Position: 1},
	}, nil)

	visible, err := svc.ListVisibleStages(context.Background(), model.RoleClient, []uint{2})

	assert.NoError(t, err)
	assert.Len(t, visible, 1)
	orderRepo.AssertNotCalled(t, "List", mock.Anything)
}
