package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

var ReactionTypes = []string{"like", "love", "care", "haha", "wow", "sad", "angry"}

// Reactions maps a reaction type to the ids of users holding it.
type Reactions map[string][]string

func NewReactions() Reactions {
	r := make(Reactions, len(ReactionTypes))
	for _, t := range ReactionTypes {
		r[t] = []string{}
	}
	return r
}

func IsReactionType(s string) bool {
	for _, t := range ReactionTypes {
		if t == s {
			return true
		}
	}
	return false
}

type Story struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Location   string    `json:"location" db:"location"`
	Story      string    `json:"story" db:"story"`
	BloodGroup *string   `json:"bloodGroup" db:"blood_group"`
	Rating     int       `json:"rating" db:"rating"`
	UserID     string    `json:"userId" db:"user_id"`
	UserName   string    `json:"userName" db:"user_name"`
	UserPhone  string    `json:"userPhone" db:"user_phone"`
	UserEmail  string    `json:"userEmail" db:"user_email"`
	UserAvatar string    `json:"userAvatar" db:"user_avatar"`
	Date       time.Time `json:"date" db:"story_date"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`

	Reactions Reactions      `json:"reactions" db:"-"`
	Comments  []StoryComment `json:"comments" db:"-"`
}

// StoryComment is a comment on a story; replies are comments with a ParentID.
type StoryComment struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	StoryID    uuid.UUID  `json:"storyId" db:"story_id"`
	ParentID   *uuid.UUID `json:"parentId,omitempty" db:"parent_id"`
	UserID     string     `json:"userId" db:"user_id"`
	UserName   string     `json:"userName" db:"user_name"`
	UserEmail  string     `json:"userEmail" db:"user_email"`
	UserAvatar string     `json:"userAvatar" db:"user_avatar"`
	Comment    string     `json:"comment" db:"content"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`

	Likes   []string       `json:"likes" db:"-"`
	Replies []StoryComment `json:"replies,omitempty" db:"-"`
}

type StoryReaction struct {
	StoryID uuid.UUID `db:"story_id"`
	UserID  string    `db:"user_id"`
	Type    string    `db:"reaction_type"`
}

type CommentLike struct {
	CommentID uuid.UUID `db:"comment_id"`
	UserID    string    `db:"user_id"`
}

type CreateStoryInput struct {
	Name       string `json:"name" validate:"required"`
	Location   string `json:"location" validate:"required"`
	Story      string `json:"story" validate:"required"`
	BloodGroup string `json:"bloodGroup" validate:"omitempty,blood_group"`
	Rating     int    `json:"rating" validate:"omitempty,min=1,max=5"`
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	UserPhone  string `json:"userPhone"`
	UserEmail  string `json:"userEmail"`
	UserAvatar string `json:"userAvatar"`
}

func (in *CreateStoryInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	in.Story = strings.TrimSpace(in.Story)
	in.UserID = strings.TrimSpace(in.UserID)
	if in.Rating == 0 {
		in.Rating = 5
	}
}

type UpdateStoryInput struct {
	Name       *string `json:"name" validate:"omitempty,min=1"`
	Location   *string `json:"location" validate:"omitempty,min=1"`
	Story      *string `json:"story" validate:"omitempty,min=1"`
	BloodGroup *string `json:"bloodGroup" validate:"omitempty,blood_group"`
}

type ReactInput struct {
	ReactionType string `json:"reactionType" validate:"required,oneof=like love care haha wow sad angry"`
}

type CommentInput struct {
	Comment string `json:"comment"`
}

type ReplyInput struct {
	Reply string `json:"reply"`
}
