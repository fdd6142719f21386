package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"notekeeper/internal/model"
)

// NoteRepository scopes every read and delete by author so a caller can
// never reach another user's notes through this layer.
type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(note *model.Note) error {
	if err := r.db.Create(note).Error; err != nil {
		return fmt.Errorf("create note failed: %w", err)
	}
	return nil
}

func (r *NoteRepository) ListByAuthorID(authorID uint) ([]model.Note, error) {
	var notes []model.Note
	if err := r.db.Where("author_id = ?", authorID).Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("list notes failed: %w", err)
	}
	return notes, nil
}

func (r *NoteRepository) GetByIDAndAuthorID(noteID, authorID uint) (*model.Note, error) {
	var note model.Note
	if err := r.db.Where("id = ? AND author_id = ?", noteID, authorID).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get note failed: %w", err)
	}
	return &note, nil
}

func (r *NoteRepository) DeleteByIDAndAuthorID(noteID, authorID uint) error {
	if err := r.db.Where("id = ? AND author_id = ?", noteID, authorID).Delete(&model.Note{}).Error; err != nil {
		return fmt.Errorf("delete note failed: %w", err)
	}
	return nil
}
