package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"workboard/internal/model"
)

// OrderRepository defines order persistence operations.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	Update(ctx context.Context, order *model.Order) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	FindDetailByID(ctx context.Context, id uint) (*model.OrderDetail, error)
	List(ctx context.Context) ([]model.OrderDetail, error)
	ListByStage(ctx context.Context, stageID uint) ([]model.Order, error)
	CountByStage(ctx context.Context, stageID uint) (int64, error)
	Move(ctx context.Context, id uint, stageID uint, workmanID *uint, priority int, now time.Time) error
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository builds a GORM-backed repository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderDetailSelect = "orders.*, s.title AS stage_title, w.name AS workman_name, COUNT(n.id) AS notes_count"

func (r *orderRepository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Select(orderDetailSelect).
		Joins("LEFT JOIN stages s ON orders.stage_id = s.id").
		Joins("LEFT JOIN workmen w ON orders.workman_id = w.id").
		Joins("LEFT JOIN notes n ON n.order_id = orders.id").
		Group("orders.id, s.title, w.name")
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) Update(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Order{}, id).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindDetailByID(ctx context.Context, id uint) (*model.OrderDetail, error) {
	var detail model.OrderDetail
	err := r.detailQuery(ctx).Where("orders.id = ?", id).Scan(&detail).Error
	if err != nil {
		return nil, err
	}
	if detail.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &detail, nil
}

// List returns every order joined with its stage title, workman name and note
// count, sorted priority-first the way the board renders columns.
func (r *orderRepository) List(ctx context.Context) ([]model.OrderDetail, error) {
	var details []model.OrderDetail
	err := r.detailQuery(ctx).
		Order("orders.priority DESC, orders.created_at DESC").
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *orderRepository) ListByStage(ctx context.Context, stageID uint) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.WithContext(ctx).Where("stage_id = ?", stageID).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) CountByStage(ctx context.Context, stageID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("stage_id = ?", stageID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Move replaces the (stage, workman, priority) tuple and refreshes
// last_updated in a single row write, even when only one field changed.
func (r *orderRepository) Move(ctx context.Context, id uint, stageID uint, workmanID *uint, priority int, now time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stage_id":     stageID,
			"workman_id":   workmanID,
			"priority":     priority,
			"last_updated": now,
		}).Error
}
