package story_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blood-connect/internal/apperrors"
	"blood-connect/internal/domain"
	"blood-connect/internal/mocks"
	"blood-connect/internal/service/story"
)

func newService() (*mocks.StoryRepository, story.Service) {
	repo := new(mocks.StoryRepository)
	return repo, story.NewService(repo, nil, time.Minute, zap.NewNop())
}

func expectAssembly(repo *mocks.StoryRepository, ids []uuid.UUID, reactions []domain.StoryReaction, comments []domain.StoryComment, likes []domain.CommentLike) {
	commentIDs := make([]uuid.UUID, len(comments))
	for i := range comments {
		commentIDs[i] = comments[i].ID
	}
	repo.On("ListReactions", mock.Anything, ids).Return(reactions, nil).Once()
	repo.On("ListComments", mock.Anything, ids).Return(comments, nil).Once()
	repo.On("ListCommentLikes", mock.Anything, commentIDs).Return(likes, nil).Once()
}

func TestStoryService_List(t *testing.T) {
	ctx := context.Background()
	repo, svc := newService()

	s1, s2 := uuid.New(), uuid.New()
	c1, r1 := uuid.New(), uuid.New()
	stories := []domain.Story{{ID: s1, UserID: "u1"}, {ID: s2, UserID: "u2"}}
	comments := []domain.StoryComment{
		{ID: c1, StoryID: s1, UserID: "u2", Comment: "great"},
		{ID: r1, StoryID: s1, ParentID: &c1, UserID: "u1", Comment: "thanks"},
	}

	repo.On("List", ctx).Return(stories, nil).Once()
	expectAssembly(repo, []uuid.UUID{s1, s2},
		[]domain.StoryReaction{
			{StoryID: s1, UserID: "u2", Type: "love"},
			{StoryID: s2, UserID: "u1", Type: "like"},
		},
		comments,
		[]domain.CommentLike{{CommentID: c1, UserID: "u1"}, {CommentID: r1, UserID: "u2"}},
	)

	got, err := svc.List(ctx)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"u2"}, got[0].Reactions["love"])
	assert.Empty(t, got[0].Reactions["like"])
	assert.Equal(t, []string{"u1"}, got[1].Reactions["like"])

	require.Len(t, got[0].Comments, 1)
	top := got[0].Comments[0]
	assert.Equal(t, []string{"u1"}, top.Likes)
	require.Len(t, top.Replies, 1)
	assert.Equal(t, "thanks", top.Replies[0].Comment)
	assert.Equal(t, []string{"u2"}, top.Replies[0].Likes)
	assert.Empty(t, got[1].Comments)
	repo.AssertExpectations(t)
}

func TestStoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Authenticated caller is the author", func(t *testing.T) {
		repo, svc := newService()
		caller := &domain.Identity{UserID: uuid.New(), Name: "Ana", Email: "ana@example.com"}
		repo.On("Create", ctx, mock.MatchedBy(func(s *domain.Story) bool {
			return s.UserID == caller.UserID.String() && s.UserName == "Ana" && s.Rating == 5
		})).Return(nil).Once()

		got, err := svc.Create(ctx, caller, domain.CreateStoryInput{
			Name: "Saved", Location: "Dhaka", Story: "A donor saved my father", UserID: "spoofed",
		})

		require.NoError(t, err)
		assert.Equal(t, caller.UserID.String(), got.UserID)
		assert.Len(t, got.Reactions, len(domain.ReactionTypes))
	})

	t.Run("Anonymous caller without userId", func(t *testing.T) {
		_, svc := newService()

		_, err := svc.Create(ctx, nil, domain.CreateStoryInput{Name: "n", Location: "l", Story: "s"})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Rating out of range", func(t *testing.T) {
		_, svc := newService()

		_, err := svc.Create(ctx, nil, domain.CreateStoryInput{Name: "n", Location: "l", Story: "s", UserID: "u", Rating: 6})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestStoryService_Ownership(t *testing.T) {
	ctx := context.Background()
	author := &domain.Identity{UserID: uuid.New()}
	admin := &domain.Identity{UserID: uuid.New(), Role: domain.RoleAdmin}
	id := uuid.New()
	existing := func() *domain.Story { return &domain.Story{ID: id, UserID: author.UserID.String()} }

	t.Run("Admin cannot edit another user's story", func(t *testing.T) {
		repo, svc := newService()
		repo.On("GetByID", ctx, id).Return(existing(), nil).Once()
		name := "changed"

		_, err := svc.Update(ctx, admin, id, domain.UpdateStoryInput{Name: &name})

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Admin can delete another user's story", func(t *testing.T) {
		repo, svc := newService()
		repo.On("GetByID", ctx, id).Return(existing(), nil).Once()
		repo.On("Delete", ctx, id).Return(nil).Once()

		require.NoError(t, svc.Delete(ctx, admin, id))
		repo.AssertExpectations(t)
	})

	t.Run("Stranger cannot delete", func(t *testing.T) {
		repo, svc := newService()
		repo.On("GetByID", ctx, id).Return(existing(), nil).Once()

		err := svc.Delete(ctx, &domain.Identity{UserID: uuid.New()}, id)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("Unknown story", func(t *testing.T) {
		repo, svc := newService()
		repo.On("GetByID", ctx, id).Return(nil, nil).Once()

		err := svc.Delete(ctx, author, id)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestStoryService_React(t *testing.T) {
	ctx := context.Background()
	caller := &domain.Identity{UserID: uuid.New()}
	uid := caller.UserID.String()
	id := uuid.New()

	t.Run("Same type removes the reaction", func(t *testing.T) {
		repo, svc := newService()
		repo.On("GetByID", ctx, id).Return(&domain.Story{ID: id}, nil).Twice()
		repo.On("GetReactionType", ctx, id, uid).Return("love", nil).Once()
		repo.On("DeleteReaction", ctx, id, uid).Return(nil).Once()
		expectAssembly(repo, []uuid.UUID{id}, nil, nil, nil)

		added, got, err := svc.React(ctx, caller, id, domain.ReactInput{ReactionType: "love"})

		require.NoError(t, err)
		assert.False(t, added)
		assert.Empty(t, got.Reactions["love"])
		repo.AssertNotCalled(t, "UpsertReaction", mock.Anything, mock.Anything)
	})

	t.Run("Another type replaces the reaction", func(t *testing.T) {
		repo, svc := newService()
		repo.On("GetByID", ctx, id).Return(&domain.Story{ID: id}, nil).Twice()
		repo.On("GetReactionType", ctx, id, uid).Return("like", nil).Once()
		repo.On("UpsertReaction", ctx, &domain.StoryReaction{StoryID: id, UserID: uid, Type: "wow"}).Return(nil).Once()
		expectAssembly(repo, []uuid.UUID{id}, []domain.StoryReaction{{StoryID: id, UserID: uid, Type: "wow"}}, nil, nil)

		added, got, err := svc.React(ctx, caller, id, domain.ReactInput{ReactionType: "wow"})

		require.NoError(t, err)
		assert.True(t, added)
		assert.Equal(t, []string{uid}, got.Reactions["wow"])
		assert.Empty(t, got.Reactions["like"])
	})

	t.Run("Unknown reaction type", func(t *testing.T) {
		_, svc := newService()

		_, _, err := svc.React(ctx, caller, id, domain.ReactInput{ReactionType: "meh"})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Anonymous caller", func(t *testing.T) {
		_, svc := newService()

		_, _, err := svc.React(ctx, nil, id, domain.ReactInput{ReactionType: "like"})

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestStoryService_Comments(t *testing.T) {
	ctx := context.Background()
	caller := &domain.Identity{UserID: uuid.New(), Name: "Ana"}
	storyID, commentID := uuid.New(), uuid.New()

	t.Run("Blank comment", func(t *testing.T) {
		_, svc := newService()

		_, err := svc.AddComment(ctx, caller, storyID, domain.CommentInput{Comment: "  "})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Reply is attached to its parent", func(t *testing.T) {
		repo, svc := newService()
		repo.On("GetComment", ctx, storyID, commentID).Return(&domain.StoryComment{ID: commentID, StoryID: storyID}, nil).Once()
		repo.On("GetByID", ctx, storyID).Return(&domain.Story{ID: storyID}, nil).Once()
		repo.On("CreateComment", ctx, mock.MatchedBy(func(c *domain.StoryComment) bool {
			return c.ParentID != nil && *c.ParentID == commentID && c.Comment == "me too" && c.UserName == "Ana"
		})).Return(nil).Once()

		reply, err := svc.AddReply(ctx, caller, storyID, commentID, domain.ReplyInput{Reply: "me too"})

		require.NoError(t, err)
		assert.Equal(t, storyID, reply.StoryID)
		repo.AssertExpectations(t)
	})

	t.Run("Only the author edits a comment", func(t *testing.T) {
		repo, svc := newService()
		repo.On("GetComment", ctx, storyID, commentID).Return(&domain.StoryComment{ID: commentID, UserID: "someone"}, nil).Once()

		_, err := svc.UpdateComment(ctx, caller, storyID, commentID, domain.CommentInput{Comment: "edit"})

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("Like toggles", func(t *testing.T) {
		repo, svc := newService()
		repo.On("GetComment", ctx, storyID, commentID).Return(&domain.StoryComment{ID: commentID}, nil).Twice()
		repo.On("ToggleCommentLike", ctx, commentID, caller.UserID.String()).Return(true, nil).Once()
		repo.On("ToggleCommentLike", ctx, commentID, caller.UserID.String()).Return(false, nil).Once()

		liked, err := svc.ToggleCommentLike(ctx, caller, storyID, commentID)
		require.NoError(t, err)
		assert.True(t, liked)

		liked, err = svc.ToggleCommentLike(ctx, caller, storyID, commentID)
		require.NoError(t, err)
		assert.False(t, liked)
	})

	t.Run("Reply like requires the reply to belong to the comment", func(t *testing.T) {
		repo, svc := newService()
		replyID := uuid.New()
		other := uuid.New()
		repo.On("GetComment", ctx, storyID, replyID).Return(&domain.StoryComment{ID: replyID, ParentID: &other}, nil).Once()

		_, err := svc.ToggleReplyLike(ctx, caller, storyID, commentID, replyID)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
