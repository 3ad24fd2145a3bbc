package repository

import (
	"context"

	"gorm.io/gorm"

	"workboard/internal/model"
)

// NoteRepository defines note persistence operations.
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	Delete(ctx context.Context, id uint) error
	DeleteByOrder(ctx context.Context, orderID uint) error
	FindByID(ctx context.Context, id uint) (*model.Note, error)
	ListByOrder(ctx context.Context, orderID uint) ([]model.NoteDetail, error)
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository builds a GORM-backed repository.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Note{}, id).Error
}

func (r *noteRepository) DeleteByOrder(ctx context.Context, orderID uint) error {
	return r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&model.Note{}).Error
}

func (r *noteRepository) FindByID(ctx context.Context, id uint) (*model.Note, error) {
	var note model.Note
	if err := r.db.WithContext(ctx).First(&note, id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// ListByOrder returns an order's notes newest-first with author names joined.
func (r *noteRepository) ListByOrder(ctx context.Context, orderID uint) ([]model.NoteDetail, error) {
	var details []model.NoteDetail
	err := r.db.WithContext(ctx).Model(&model.Note{}).
		Select("notes.*, u.name AS created_by_name").
		Joins("LEFT JOIN users u ON notes.created_by = u.id").
		Where("notes.order_id = ?", orderID).
		Order("notes.created_at DESC").
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}
