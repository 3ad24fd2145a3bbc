package service

import (
	"context"

	"gorm.io/gorm"

	"workboard/internal/errors"
	"workboard/internal/model"
	"workboard/internal/repository"
)

// NoteService exposes order note operations. Note mutations never touch the
// parent order's last_updated.
type NoteService interface {
	ListNotes(ctx context.Context, orderID uint) ([]model.NoteDetail, error)
	CreateNote(ctx context.Context, orderID uint, content string, createdBy uint) (*model.Note, error)
	DeleteNote(ctx context.Context, id, callerID uint, callerRole model.Role) error
}

type noteService struct {
	repo      repository.NoteRepository
	orderRepo repository.OrderRepository
}

// NewNoteService creates a new note service.
func NewNoteService(repo repository.NoteRepository, orderRepo repository.OrderRepository) NoteService {
	return &noteService{repo: repo, orderRepo: orderRepo}
}

func (s *noteService) ListNotes(ctx context.Context, orderID uint) ([]model.NoteDetail, error) {
	if err := s.checkOrder(ctx, orderID); err != nil {
		return nil, err
	}
	return s.repo.ListByOrder(ctx, orderID)
}

// CreateNote appends a note attributed to the caller.
func (s *noteService) CreateNote(ctx context.Context, orderID uint, content string, createdBy uint) (*model.Note, error) {
	if err := s.checkOrder(ctx, orderID); err != nil {
		return nil, err
	}
	note := &model.Note{
		OrderID:   orderID,
		Content:   content,
		CreatedBy: &createdBy,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteNote removes a note. Only the author or an admin may delete.
func (s *noteService) DeleteNote(ctx context.Context, id, callerID uint, callerRole model.Role) error {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNoteNotFound
		}
		return err
	}

	isAuthor := note.CreatedBy != nil && *note.CreatedBy == callerID
	if !isAuthor && callerRole != model.RoleAdmin {
		return errors.ErrNotNoteOwner
	}
	return s.repo.Delete(ctx, id)
}

func (s *noteService) checkOrder(ctx context.Context, orderID uint) error {
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrOrderNotFound
		}
		return err
	}
	return nil
}
