package story

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"blood-connect/internal/apperrors"
	"blood-connect/internal/domain"
	"blood-connect/internal/repository"
	"blood-connect/internal/validation"
)

const cacheKey = "stories:all"

type Service interface {
	List(ctx context.Context) ([]domain.Story, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Story, error)
	Create(ctx context.Context, caller *domain.Identity, input domain.CreateStoryInput) (*domain.Story, error)
	Update(ctx context.Context, caller *domain.Identity, id uuid.UUID, input domain.UpdateStoryInput) (*domain.Story, error)
	Delete(ctx context.Context, caller *domain.Identity, id uuid.UUID) error

	React(ctx context.Context, caller *domain.Identity, id uuid.UUID, input domain.ReactInput) (bool, *domain.Story, error)

	AddComment(ctx context.Context, caller *domain.Identity, storyID uuid.UUID, input domain.CommentInput) (*domain.StoryComment, error)
	UpdateComment(ctx context.Context, caller *domain.Identity, storyID, commentID uuid.UUID, input domain.CommentInput) (*domain.StoryComment, error)
	DeleteComment(ctx context.Context, caller *domain.Identity, storyID, commentID uuid.UUID) error
	ToggleCommentLike(ctx context.Context, caller *domain.Identity, storyID, commentID uuid.UUID) (bool, error)
	AddReply(ctx context.Context, caller *domain.Identity, storyID, commentID uuid.UUID, input domain.ReplyInput) (*domain.StoryComment, error)
	ToggleReplyLike(ctx context.Context, caller *domain.Identity, storyID, commentID, replyID uuid.UUID) (bool, error)
}

type service struct {
	storyRepo repository.StoryRepository
	redis     *redis.Client
	cacheTTL  time.Duration
	log       *zap.Logger
}

func NewService(storyRepo repository.StoryRepository, redis *redis.Client, cacheTTL time.Duration, log *zap.Logger) Service {
	return &service{
		storyRepo: storyRepo,
		redis:     redis,
		cacheTTL:  cacheTTL,
		log:       log.Named("story"),
	}
}

func (s *service) List(ctx context.Context) ([]domain.Story, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var stories []domain.Story
			if json.Unmarshal([]byte(cached), &stories) == nil {
				return stories, nil
			}
		}
	}

	stories, err := s.storyRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.assemble(ctx, stories); err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(stories); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, s.cacheTTL).Err(); err != nil {
				s.log.Warn("failed to cache stories", zap.Error(err))
			}
		}
	}

	return stories, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Story, error) {
	story, err := s.getStory(ctx, id)
	if err != nil {
		return nil, err
	}

	stories := []domain.Story{*story}
	if err := s.assemble(ctx, stories); err != nil {
		return nil, err
	}
	return &stories[0], nil
}

// Create takes the author from the authenticated caller when there is one.
// Anonymous authors must name themselves with a userId.
func (s *service) Create(ctx context.Context, caller *domain.Identity, input domain.CreateStoryInput) (*domain.Story, error) {
	input.Normalize()
	if caller != nil {
		input.UserID = caller.ID()
		input.UserName = caller.Name
		input.UserEmail = caller.Email
		input.UserPhone = caller.Phone
		input.UserAvatar = caller.Avatar
	}

	if err := validation.ValidateStruct(input); err != nil {
		return nil, err
	}
	if input.UserID == "" {
		return nil, apperrors.Invalid("field 'userId' is required")
	}

	story := &domain.Story{
		ID:         uuid.New(),
		Name:       input.Name,
		Location:   input.Location,
		Story:      input.Story,
		BloodGroup: domain.StringPtr(input.BloodGroup),
		Rating:     input.Rating,
		UserID:     input.UserID,
		UserName:   input.UserName,
		UserPhone:  input.UserPhone,
		UserEmail:  input.UserEmail,
		UserAvatar: input.UserAvatar,
		Reactions:  domain.NewReactions(),
		Comments:   []domain.StoryComment{},
	}

	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return story, nil
}

// Update is limited to the author; admins may delete but not edit.
func (s *service) Update(ctx context.Context, caller *domain.Identity, id uuid.UUID, input domain.UpdateStoryInput) (*domain.Story, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if err := validation.ValidateStruct(input); err != nil {
		return nil, err
	}

	story, err := s.getStory(ctx, id)
	if err != nil {
		return nil, err
	}
	if story.UserID != caller.ID() {
		return nil, apperrors.Forbidden("you can only edit your own stories")
	}

	if input.Name != nil {
		story.Name = strings.TrimSpace(*input.Name)
	}
	if input.Location != nil {
		story.Location = strings.TrimSpace(*input.Location)
	}
	if input.Story != nil {
		story.Story = strings.TrimSpace(*input.Story)
	}
	if input.BloodGroup != nil {
		story.BloodGroup = domain.StringPtr(*input.BloodGroup)
	}

	if err := s.storyRepo.Update(ctx, story); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, caller *domain.Identity, id uuid.UUID) error {
	if caller == nil {
		return apperrors.ErrUnauthorized
	}

	story, err := s.getStory(ctx, id)
	if err != nil {
		return err
	}
	if story.UserID != caller.ID() && !caller.IsAdmin() {
		return apperrors.Forbidden("you can only delete your own stories")
	}

	if err := s.storyRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// React gives each user at most one reaction per story. Repeating the held
// reaction removes it; any other type replaces it. The bool reports whether
// the caller holds a reaction afterwards.
func (s *service) React(ctx context.Context, caller *domain.Identity, id uuid.UUID, input domain.ReactInput) (bool, *domain.Story, error) {
	if caller == nil {
		return false, nil, apperrors.ErrUnauthorized
	}
	if err := validation.ValidateStruct(input); err != nil {
		return false, nil, err
	}
	if _, err := s.getStory(ctx, id); err != nil {
		return false, nil, err
	}

	current, err := s.storyRepo.GetReactionType(ctx, id, caller.ID())
	if err != nil {
		return false, nil, err
	}

	added := current != input.ReactionType
	if added {
		err = s.storyRepo.UpsertReaction(ctx, &domain.StoryReaction{StoryID: id, UserID: caller.ID(), Type: input.ReactionType})
	} else {
		err = s.storyRepo.DeleteReaction(ctx, id, caller.ID())
	}
	if err != nil {
		return false, nil, err
	}

	s.invalidate(ctx)
	story, err := s.GetByID(ctx, id)
	if err != nil {
		return false, nil, err
	}
	return added, story, nil
}

func (s *service) AddComment(ctx context.Context, caller *domain.Identity, storyID uuid.UUID, input domain.CommentInput) (*domain.StoryComment, error) {
	text := strings.TrimSpace(input.Comment)
	if text == "" {
		return nil, apperrors.Invalid("comment is required")
	}
	return s.addComment(ctx, caller, storyID, nil, text)
}

func (s *service) UpdateComment(ctx context.Context, caller *domain.Identity, storyID, commentID uuid.UUID, input domain.CommentInput) (*domain.StoryComment, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthorized
	}
	text := strings.TrimSpace(input.Comment)
	if text == "" {
		return nil, apperrors.Invalid("comment is required")
	}

	comment, err := s.getComment(ctx, storyID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != caller.ID() {
		return nil, apperrors.Forbidden("you can only edit your own comments")
	}

	comment.Comment = text
	if err := s.storyRepo.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return comment, nil
}

func (s *service) DeleteComment(ctx context.Context, caller *domain.Identity, storyID, commentID uuid.UUID) error {
	if caller == nil {
		return apperrors.ErrUnauthorized
	}

	comment, err := s.getComment(ctx, storyID, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != caller.ID() && !caller.IsAdmin() {
		return apperrors.Forbidden("you can only delete your own comments")
	}

	if err := s.storyRepo.DeleteComment(ctx, commentID); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *service) ToggleCommentLike(ctx context.Context, caller *domain.Identity, storyID, commentID uuid.UUID) (bool, error) {
	if caller == nil {
		return false, apperrors.ErrUnauthorized
	}
	if _, err := s.getComment(ctx, storyID, commentID); err != nil {
		return false, err
	}
	return s.toggleLike(ctx, caller, commentID)
}

func (s *service) AddReply(ctx context.Context, caller *domain.Identity, storyID, commentID uuid.UUID, input domain.ReplyInput) (*domain.StoryComment, error) {
	text := strings.TrimSpace(input.Reply)
	if text == "" {
		return nil, apperrors.Invalid("reply is required")
	}
	if caller == nil {
		return nil, apperrors.ErrUnauthorized
	}

	parent, err := s.getComment(ctx, storyID, commentID)
	if err != nil {
		return nil, err
	}
	if parent.ParentID != nil {
		return nil, apperrors.Invalid("replies cannot be nested")
	}
	return s.addComment(ctx, caller, storyID, &parent.ID, text)
}

func (s *service) ToggleReplyLike(ctx context.Context, caller *domain.Identity, storyID, commentID, replyID uuid.UUID) (bool, error) {
	if caller == nil {
		return false, apperrors.ErrUnauthorized
	}

	reply, err := s.storyRepo.GetComment(ctx, storyID, replyID)
	if err != nil {
		return false, err
	}
	if reply == nil || reply.ParentID == nil || *reply.ParentID != commentID {
		return false, apperrors.NotFound("reply")
	}
	return s.toggleLike(ctx, caller, replyID)
}

func (s *service) addComment(ctx context.Context, caller *domain.Identity, storyID uuid.UUID, parentID *uuid.UUID, text string) (*domain.StoryComment, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if _, err := s.getStory(ctx, storyID); err != nil {
		return nil, err
	}

	comment := &domain.StoryComment{
		ID:         uuid.New(),
		StoryID:    storyID,
		ParentID:   parentID,
		UserID:     caller.ID(),
		UserName:   caller.Name,
		UserEmail:  caller.Email,
		UserAvatar: caller.Avatar,
		Comment:    text,
		Likes:      []string{},
	}
	if err := s.storyRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return comment, nil
}

func (s *service) toggleLike(ctx context.Context, caller *domain.Identity, commentID uuid.UUID) (bool, error) {
	liked, err := s.storyRepo.ToggleCommentLike(ctx, commentID, caller.ID())
	if err != nil {
		return false, err
	}
	s.invalidate(ctx)
	return liked, nil
}

func (s *service) getStory(ctx context.Context, id uuid.UUID) (*domain.Story, error) {
	story, err := s.storyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, apperrors.NotFound("story")
	}
	return story, nil
}

func (s *service) getComment(ctx context.Context, storyID, commentID uuid.UUID) (*domain.StoryComment, error) {
	comment, err := s.storyRepo.GetComment(ctx, storyID, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, apperrors.NotFound("comment")
	}
	return comment, nil
}

// assemble loads reactions, comments, replies and likes for stories in
// three batched queries and attaches them in place.
func (s *service) assemble(ctx context.Context, stories []domain.Story) error {
	ids := make([]uuid.UUID, len(stories))
	index := make(map[uuid.UUID]int, len(stories))
	for i := range stories {
		ids[i] = stories[i].ID
		index[stories[i].ID] = i
		stories[i].Reactions = domain.NewReactions()
		stories[i].Comments = []domain.StoryComment{}
	}

	reactions, err := s.storyRepo.ListReactions(ctx, ids)
	if err != nil {
		return err
	}
	for _, r := range reactions {
		if i, ok := index[r.StoryID]; ok && domain.IsReactionType(r.Type) {
			stories[i].Reactions[r.Type] = append(stories[i].Reactions[r.Type], r.UserID)
		}
	}

	comments, err := s.storyRepo.ListComments(ctx, ids)
	if err != nil {
		return err
	}

	commentIDs := make([]uuid.UUID, len(comments))
	for i := range comments {
		commentIDs[i] = comments[i].ID
	}
	likes, err := s.storyRepo.ListCommentLikes(ctx, commentIDs)
	if err != nil {
		return err
	}
	likesByComment := make(map[uuid.UUID][]string)
	for _, l := range likes {
		likesByComment[l.CommentID] = append(likesByComment[l.CommentID], l.UserID)
	}

	replies := make(map[uuid.UUID][]domain.StoryComment)
	for _, c := range comments {
		c.Likes = likesByComment[c.ID]
		if c.Likes == nil {
			c.Likes = []string{}
		}
		if c.ParentID != nil {
			replies[*c.ParentID] = append(replies[*c.ParentID], c)
		}
	}

	for _, c := range comments {
		if c.ParentID != nil {
			continue
		}
		c.Likes = likesByComment[c.ID]
		if c.Likes == nil {
			c.Likes = []string{}
		}
		c.Replies = replies[c.ID]
		if c.Replies == nil {
			c.Replies = []domain.StoryComment{}
		}
		if i, ok := index[c.StoryID]; ok {
			stories[i].Comments = append(stories[i].Comments, c)
		}
	}

	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, cacheKey).Err()
	}
}
