package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"blood-connect/internal/domain"
)

type StoryRepository struct {
	mock.Mock
}

func (m *StoryRepository) Create(ctx context.Context, story *domain.Story) error {
	args := m.Called(ctx, story)
	return args.Error(0)
}

func (m *StoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Story, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Story), args.Error(1)
}

func (m *StoryRepository) List(ctx context.Context) ([]domain.Story, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Story), args.Error(1)
}

func (m *StoryRepository) Update(ctx context.Context, story *domain.Story) error {
	args := m.Called(ctx, story)
	return args.Error(0)
}

func (m *StoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *StoryRepository) GetReactionType(ctx context.Context, storyID uuid.UUID, userID string) (string, error) {
	args := m.Called(ctx, storyID, userID)
	return args.String(0), args.Error(1)
}

func (m *StoryRepository) UpsertReaction(ctx context.Context, reaction *domain.StoryReaction) error {
	args := m.Called(ctx, reaction)
	return args.Error(0)
}

func (m *StoryRepository) DeleteReaction(ctx context.Context, storyID uuid.UUID, userID string) error {
	args := m.Called(ctx, storyID, userID)
	return args.Error(0)
}

func (m *StoryRepository) ListReactions(ctx context.Context, storyIDs []uuid.UUID) ([]domain.StoryReaction, error) {
	args := m.Called(ctx, storyIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoryReaction), args.Error(1)
}

func (m *StoryRepository) CreateComment(ctx context.Context, comment *domain.StoryComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *StoryRepository) GetComment(ctx context.Context, storyID, commentID uuid.UUID) (*domain.StoryComment, error) {
	args := m.Called(ctx, storyID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoryComment), args.Error(1)
}

func (m *StoryRepository) UpdateComment(ctx context.Context, comment *domain.StoryComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *StoryRepository) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

func (m *StoryRepository) ListComments(ctx context.Context, storyIDs []uuid.UUID) ([]domain.StoryComment, error) {
	args := m.Called(ctx, storyIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoryComment), args.Error(1)
}

func (m *StoryRepository) ToggleCommentLike(ctx context.Context, commentID uuid.UUID, userID string) (bool, error) {
	args := m.Called(ctx, commentID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *StoryRepository) ListCommentLikes(ctx context.Context, commentIDs []uuid.UUID) ([]domain.CommentLike, error) {
	args := m.Called(ctx, commentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CommentLike), args.Error(1)
}
