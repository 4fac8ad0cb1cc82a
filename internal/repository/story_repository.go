package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"blood-connect/internal/domain"
)

type StoryRepository interface {
	Create(ctx context.Context, story *domain.Story) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Story, error)
	List(ctx context.Context) ([]domain.Story, error)
	Update(ctx context.Context, story *domain.Story) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetReactionType(ctx context.Context, storyID uuid.UUID, userID string) (string, error)
	UpsertReaction(ctx context.Context, reaction *domain.StoryReaction) error
	DeleteReaction(ctx context.Context, storyID uuid.UUID, userID string) error
	ListReactions(ctx context.Context, storyIDs []uuid.UUID) ([]domain.StoryReaction, error)

	CreateComment(ctx context.Context, comment *domain.StoryComment) error
	GetComment(ctx context.Context, storyID, commentID uuid.UUID) (*domain.StoryComment, error)
	UpdateComment(ctx context.Context, comment *domain.StoryComment) error
	DeleteComment(ctx context.Context, commentID uuid.UUID) error
	ListComments(ctx context.Context, storyIDs []uuid.UUID) ([]domain.StoryComment, error)

	ToggleCommentLike(ctx context.Context, commentID uuid.UUID, userID string) (bool, error)
	ListCommentLikes(ctx context.Context, commentIDs []uuid.UUID) ([]domain.CommentLike, error)
}

type storyRepository struct {
	db *sqlx.DB
}

func NewStoryRepository(db *sqlx.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *domain.Story) error {
	query := `
		INSERT INTO stories (id, name, location, story, blood_group, rating, user_id,
			user_name, user_phone, user_email, user_avatar)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING story_date, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		story.ID, story.Name, story.Location, story.Story, story.BloodGroup, story.Rating,
		story.UserID, story.UserName, story.UserPhone, story.UserEmail, story.UserAvatar,
	).Scan(&story.Date, &story.CreatedAt, &story.UpdatedAt)
}

func (r *storyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Story, error) {
	var story domain.Story
	query := `SELECT * FROM stories WHERE id = $1`

	err := r.db.GetContext(ctx, &story, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &story, nil
}

func (r *storyRepository) List(ctx context.Context) ([]domain.Story, error) {
	stories := []domain.Story{}
	query := `SELECT * FROM stories ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &stories, query)
	return stories, err
}

func (r *storyRepository) Update(ctx context.Context, story *domain.Story) error {
	query := `
		UPDATE stories
		SET name = $2, location = $3, story = $4, blood_group = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		story.ID, story.Name, story.Location, story.Story, story.BloodGroup,
	).Scan(&story.UpdatedAt)
}

// Delete removes the story; reactions, comments and likes cascade.
func (r *storyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM stories WHERE id = $1`, id)
	return err
}

// GetReactionType returns "" when the user has not reacted.
func (r *storyRepository) GetReactionType(ctx context.Context, storyID uuid.UUID, userID string) (string, error) {
	var reactionType string
	query := `SELECT reaction_type FROM story_reactions WHERE story_id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &reactionType, query, storyID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return reactionType, err
}

func (r *storyRepository) UpsertReaction(ctx context.Context, reaction *domain.StoryReaction) error {
	query := `
		INSERT INTO story_reactions (story_id, user_id, reaction_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (story_id, user_id) DO UPDATE SET reaction_type = EXCLUDED.reaction_type`

	_, err := r.db.ExecContext(ctx, query, reaction.StoryID, reaction.UserID, reaction.Type)
	return err
}

func (r *storyRepository) DeleteReaction(ctx context.Context, storyID uuid.UUID, userID string) error {
	query := `DELETE FROM story_reactions WHERE story_id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, storyID, userID)
	return err
}

func (r *storyRepository) ListReactions(ctx context.Context, storyIDs []uuid.UUID) ([]domain.StoryReaction, error) {
	reactions := []domain.StoryReaction{}
	if len(storyIDs) == 0 {
		return reactions, nil
	}

	query, args, err := sqlx.In(`
		SELECT story_id, user_id, reaction_type FROM story_reactions
		WHERE story_id IN (?)
		ORDER BY created_at`, storyIDs)
	if err != nil {
		return nil, err
	}

	err = r.db.SelectContext(ctx, &reactions, r.db.Rebind(query), args...)
	return reactions, err
}

func (r *storyRepository) CreateComment(ctx context.Context, comment *domain.StoryComment) error {
	query := `
		INSERT INTO story_comments (id, story_id, parent_id, user_id, user_name, user_email, user_avatar, content)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		comment.ID, comment.StoryID, comment.ParentID, comment.UserID,
		comment.UserName, comment.UserEmail, comment.UserAvatar, comment.Comment,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)
}

func (r *storyRepository) GetComment(ctx context.Context, storyID, commentID uuid.UUID) (*domain.StoryComment, error) {
	var comment domain.StoryComment
	query := `SELECT * FROM story_comments WHERE id = $1 AND story_id = $2`

	err := r.db.GetContext(ctx, &comment, query, commentID, storyID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *storyRepository) UpdateComment(ctx context.Context, comment *domain.StoryComment) error {
	query := `
		UPDATE story_comments
		SET content = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query, comment.ID, comment.Comment).Scan(&comment.UpdatedAt)
}

// DeleteComment removes the comment together with its replies and likes.
func (r *storyRepository) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM story_comments WHERE id = $1`, commentID)
	return err
}

func (r *storyRepository) ListComments(ctx context.Context, storyIDs []uuid.UUID) ([]domain.StoryComment, error) {
	comments := []domain.StoryComment{}
	if len(storyIDs) == 0 {
		return comments, nil
	}

	query, args, err := sqlx.In(`
		SELECT * FROM story_comments
		WHERE story_id IN (?)
		ORDER BY created_at ASC`, storyIDs)
	if err != nil {
		return nil, err
	}

	err = r.db.SelectContext(ctx, &comments, r.db.Rebind(query), args...)
	return comments, err
}

// ToggleCommentLike adds the like when absent and removes it otherwise.
// It reports whether the comment is liked afterwards.
func (r *storyRepository) ToggleCommentLike(ctx context.Context, commentID uuid.UUID, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM story_comment_likes WHERE comment_id = $1 AND user_id = $2`, commentID, userID)
	if err != nil {
		return false, err
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if removed > 0 {
		return false, nil
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO story_comment_likes (comment_id, user_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, commentID, userID)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *storyRepository) ListCommentLikes(ctx context.Context, commentIDs []uuid.UUID) ([]domain.CommentLike, error) {
	likes := []domain.CommentLike{}
	if len(commentIDs) == 0 {
		return likes, nil
	}

	query, args, err := sqlx.In(`
		SELECT comment_id, user_id FROM story_comment_likes
		WHERE comment_id IN (?)
		ORDER BY created_at`, commentIDs)
	if err != nil {
		return nil, err
	}

	err = r.db.SelectContext(ctx, &likes, r.db.Rebind(query), args...)
	return likes, err
}
