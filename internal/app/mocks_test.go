package app_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"notekeeper/internal/model"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) GetByID(id uint) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) List() ([]model.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) Create(note *model.Note) error {
	args := m.Called(note)
	return args.Error(0)
}

func (m *mockNoteRepository) ListByAuthorID(authorID uint) ([]model.Note, error) {
	args := m.Called(authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *mockNoteRepository) GetByIDAndAuthorID(noteID, authorID uint) (*model.Note, error) {
	args := m.Called(noteID, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *mockNoteRepository) DeleteByIDAndAuthorID(noteID, authorID uint) error {
	args := m.Called(noteID, authorID)
	return args.Error(0)
}

type mockActivityPublisher struct {
	mock.Mock
}

func (m *mockActivityPublisher) Publish(ctx context.Context, event model.ActivityEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type mockNoteListCache struct {
	mock.Mock
}

func (m *mockNoteListCache) GetNotes(ctx context.Context, userID uint) ([]model.Note, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]model.Note), args.Bool(1), args.Error(2)
}

func (m *mockNoteListCache) SetNotes(ctx context.Context, userID uint, notes []model.Note) error {
	args := m.Called(ctx, userID, notes)
	return args.Error(0)
}

func (m *mockNoteListCache) DeleteNotes(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockNoteListCache) MarkDirty(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockNoteListCache) IsDirty(ctx context.Context, userID uint) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
