package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"workboard/internal/errors"
	"workboard/internal/model"
	"workboard/internal/repository"
)

// OrderService exposes order tracking operations, including the transition
// engine behind board drag-and-drop.
type OrderService interface {
	ListOrders(ctx context.Context, role model.Role, name string, visibleStageIDs []uint) ([]model.OrderDetail, error)
	GetOrder(ctx context.Context, id uint) (*model.OrderDetail, error)
	CreateOrder(ctx context.Context, input OrderInput) (*model.Order, error)
	UpdateOrder(ctx context.Context, id uint, input OrderInput) (*model.Order, error)
	MoveOrder(ctx context.Context, id uint, stageID uint, workmanID *uint, priority int) error
	ReprioritizeColumn(ctx context.Context, stageID uint, orderedIDs []uint) (int, error)
	DeleteOrder(ctx context.Context, id uint) error
}

// OrderInput carries the mutable order fields. Updates are a full replace:
// every field is written, including ones the caller left unchanged.
type OrderInput struct {
	ClientName   string
	Description  string
	ReceivedDate string
	DueDate      string
	StageID      uint
	WorkmanID    *uint
	Priority     int
	Status       model.OrderStatus
}

type orderService struct {
	repo      repository.OrderRepository
	stageRepo repository.StageRepository
	noteRepo  repository.NoteRepository
	policy    *AccessPolicy
	now       func() time.Time
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.OrderRepository, stageRepo repository.StageRepository, noteRepo repository.NoteRepository, policy *AccessPolicy) OrderService {
	return &orderService{
		repo:      repo,
		stageRepo: stageRepo,
		noteRepo:  noteRepo,
		policy:    policy,
		now:       time.Now,
	}
}

// ListOrders returns the caller's visible orders annotated with the derived
// inactivity alert.
func (s *orderService) ListOrders(ctx context.Context, role model.Role, name string, visibleStageIDs []uint) ([]model.OrderDetail, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	visible := s.policy.VisibleOrders(role, name, visibleStageIDs, orders)
	now := s.now()
	for i := range visible {
		visible[i].Alert = InactivityAlert(visible[i].LastUpdated, now)
	}
	return visible, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uint) (*model.OrderDetail, error) {
	detail, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOrderNotFound
		}
		return nil, err
	}
	detail.Alert = InactivityAlert(detail.LastUpdated, s.now())
	return detail, nil
}

// CreateOrder creates an order, defaulting it into the first pipeline stage
// when none is given.
func (s *orderService) CreateOrder(ctx context.Context, input OrderInput) (*model.Order, error) {
	if input.Status == "" {
		input.Status = model.OrderStatusActive
	}
	if !input.Status.Valid() {
		return nil, errors.ErrInvalidStatus
	}

	if input.StageID == 0 {
		stages, err := s.stageRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		if len(stages) == 0 {
			return nil, errors.ErrStageNotFound
		}
		input.StageID = stages[0].ID
	} else if err := s.checkStage(ctx, input.StageID); err != nil {
		return nil, err
	}

	order := &model.Order{
		ClientName:   input.ClientName,
		Description:  input.Description,
		ReceivedDate: input.ReceivedDate,
		DueDate:      input.DueDate,
		StageID:      input.StageID,
		WorkmanID:    input.WorkmanID,
		Priority:     input.Priority,
		Status:       input.Status,
		LastUpdated:  s.now(),
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

// UpdateOrder is a full-record replace of every mutable field, refreshing
// last_updated. Not a partial patch: unchanged values must be passed through.
func (s *orderService) UpdateOrder(ctx context.Context, id uint, input OrderInput) (*model.Order, error) {
	if input.Status == "" {
		input.Status = model.OrderStatusActive
	}
	if !input.Status.Valid() {
		return nil, errors.ErrInvalidStatus
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOrderNotFound
		}
		return nil, err
	}
	if err := s.checkStage(ctx, input.StageID); err != nil {
		return nil, err
	}

	order.ClientName = input.ClientName
	order.Description = input.Description
	order.ReceivedDate = input.ReceivedDate
	order.DueDate = input.DueDate
	order.StageID = input.StageID
	order.WorkmanID = input.WorkmanID
	order.Priority = input.Priority
	order.Status = input.Status
	order.LastUpdated = s.now()

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return order, nil
}

// MoveOrder replaces the (stage, workman, priority) tuple in one row write
// and refreshes last_updated. All three fields are always written, so the
// operation is idempotent; callers pass unchanged values through explicitly.
func (s *orderService) MoveOrder(ctx context.Context, id uint, stageID uint, workmanID *uint, priority int) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrOrderNotFound
		}
		return err
	}
	if err := s.checkStage(ctx, stageID); err != nil {
		return err
	}
	return s.repo.Move(ctx, id, stageID, workmanID, priority, s.now())
}

// ReprioritizeColumn applies a drag-reorder within one stage: the given
// top-to-bottom sequence gets priorities N-1 down to 0, and only orders whose
// priority actually changes are written. The writes run in parallel and are
// joined; on aggregate failure the caller re-fetches rather than assuming
// partial success. Returns the number of moves emitted.
func (s *orderService) ReprioritizeColumn(ctx context.Context, stageID uint, orderedIDs []uint) (int, error) {
	if err := s.checkStage(ctx, stageID); err != nil {
		return 0, err
	}
	column, err := s.repo.ListByStage(ctx, stageID)
	if err != nil {
		return 0, err
	}

	moves, err := planColumnMoves(column, orderedIDs)
	if err != nil {
		return 0, err
	}

	now := s.now()
	g, gctx := errgroup.WithContext(ctx)
	for _, mv := range moves {
		mv := mv
		g.Go(func() error {
			return s.repo.Move(gctx, mv.order.ID, mv.order.StageID, mv.order.WorkmanID, mv.priority, now)
		})
	}
	if err := g.Wait(); err != nil {
		return len(moves), fmt.Errorf("reprioritize stage %d: %w", stageID, err)
	}
	return len(moves), nil
}

// DeleteOrder removes an order and its notes, notes first.
func (s *orderService) DeleteOrder(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrOrderNotFound
		}
		return err
	}
	if err := s.noteRepo.DeleteByOrder(ctx, id); err != nil {
		return fmt.Errorf("delete order notes: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *orderService) checkStage(ctx context.Context, stageID uint) error {
	if _, err := s.stageRepo.FindByID(ctx, stageID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrStageNotFound
		}
		return err
	}
	return nil
}

type columnMove struct {
	order    model.Order
	priority int
}

// planColumnMoves computes the priority writes needed to realize the desired
// top-to-bottom order of a column. The sequence must be a permutation of the
// column's orders. No-op moves are suppressed, so replaying an
// already-correct sequence plans nothing.
func planColumnMoves(column []model.Order, orderedIDs []uint) ([]columnMove, error) {
	if len(orderedIDs) != len(column) {
		return nil, errors.ErrColumnMismatch
	}
	byID := make(map[uint]model.Order, len(column))
	for _, o := range column {
		byID[o.ID] = o
	}

	moves := make([]columnMove, 0, len(orderedIDs))
	seen := make(map[uint]bool, len(orderedIDs))
	for i, id := range orderedIDs {
		o, ok := byID[id]
		if !ok || seen[id] {
			return nil, errors.ErrColumnMismatch
		}
		seen[id] = true
		want := len(orderedIDs) - 1 - i
		if o.Priority != want {
			moves = append(moves, columnMove{order: o, priority: want})
		}
	}
	return moves, nil
}
