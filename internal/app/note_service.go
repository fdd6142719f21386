package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"notekeeper/internal/model"
)

var ErrNoteNotFound = errors.New("note not found")

type NoteRepository interface {
	Create(note *model.Note) error
	ListByAuthorID(authorID uint) ([]model.Note, error)
	GetByIDAndAuthorID(noteID, authorID uint) (*model.Note, error)
	DeleteByIDAndAuthorID(noteID, authorID uint) error
}

type ActivityPublisher interface {
	Publish(ctx context.Context, event model.ActivityEvent) error
}

type NoteListCache interface {
	GetNotes(ctx context.Context, userID uint) ([]model.Note, bool, error)
	SetNotes(ctx context.Context, userID uint, notes []model.Note) error
	DeleteNotes(ctx context.Context, userID uint) error
	MarkDirty(ctx context.Context, userID uint) error
	IsDirty(ctx context.Context, userID uint) (bool, error)
}

// NoteService is the only path to note data. Every query carries the
// caller's user ID in its predicate, so a note owned by someone else is
// indistinguishable from one that does not exist.
type NoteService struct {
	noteRepo  NoteRepository
	publisher ActivityPublisher
	noteCache NoteListCache
}

type CreateNoteInput struct {
	UserID  uint
	Title   string
	Content string
}

func NewNoteService(noteRepo NoteRepository, publisher ActivityPublisher, noteCache NoteListCache) *NoteService {
	return &NoteService{
		noteRepo:  noteRepo,
		publisher: publisher,
		noteCache: noteCache,
	}
}

func (s *NoteService) List(userID uint) ([]model.Note, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	ctx := context.Background()
	if s.noteCache != nil {
		dirty, err := s.noteCache.IsDirty(ctx, userID)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.noteCache.GetNotes(ctx, userID); cacheErr == nil && hit {
				return cached, nil
			}
		}
	}

	notes, err := s.noteRepo.ListByAuthorID(userID)
	if err != nil {
		return nil, err
	}
	if s.noteCache != nil {
		if dirty, dirtyErr := s.noteCache.IsDirty(ctx, userID); dirtyErr == nil && !dirty {
			_ = s.noteCache.SetNotes(ctx, userID, notes)
		}
	}
	return notes, nil
}

// Create persists a note stamped with the caller as author. A note that
// fails validation is not persisted, but the failure is only logged: the
// caller still gets a success-shaped nil result. Long-standing behavior
// carried over from the system this replaces; clients depend on it.
func (s *NoteService) Create(input CreateNoteInput) (*model.Note, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}

	var fieldErrors []string
	if strings.TrimSpace(input.Title) == "" {
		fieldErrors = append(fieldErrors, "title: this field may not be blank")
	}
	if strings.TrimSpace(input.Content) == "" {
		fieldErrors = append(fieldErrors, "content: this field may not be blank")
	}
	if len(fieldErrors) > 0 {
		log.Printf("note create validation failed for user %d: %s", input.UserID, strings.Join(fieldErrors, "; "))
		return nil, nil
	}

	note := &model.Note{
		AuthorID:  input.UserID,
		Title:     input.Title,
		Content:   input.Content,
		CreatedAt: time.Now(),
	}
	if err := s.noteRepo.Create(note); err != nil {
		return nil, err
	}

	ctx := context.Background()
	s.invalidateList(ctx, input.UserID)
	s.publishActivity(ctx, model.ActivityEvent{
		UserID:    input.UserID,
		NoteID:    note.ID,
		Action:    model.ActivityNoteCreated,
		NoteTitle: note.Title,
		CreatedAt: note.CreatedAt,
	})
	return note, nil
}

func (s *NoteService) Delete(userID, noteID uint) error {
	if userID == 0 || noteID == 0 {
		return ErrInvalidInput
	}

	note, err := s.noteRepo.GetByIDAndAuthorID(noteID, userID)
	if err != nil {
		return err
	}
	if note == nil {
		return ErrNoteNotFound
	}
	if err := s.noteRepo.DeleteByIDAndAuthorID(noteID, userID); err != nil {
		return err
	}

	ctx := context.Background()
	s.invalidateList(ctx, userID)
	s.publishActivity(ctx, model.ActivityEvent{
		UserID:    userID,
		NoteID:    noteID,
		Action:    model.ActivityNoteDeleted,
		NoteTitle: note.Title,
		CreatedAt: time.Now(),
	})
	return nil
}

func (s *NoteService) invalidateList(ctx context.Context, userID uint) {
	if s.noteCache == nil {
		return
	}
	_ = s.noteCache.MarkDirty(ctx, userID)
	_ = s.noteCache.DeleteNotes(ctx, userID)
}

// The activity trail is a side channel; losing an event must never fail
// the note operation itself.
func (s *NoteService) publishActivity(ctx context.Context, event model.ActivityEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("publish activity event failed: %v", err)
	}
}
