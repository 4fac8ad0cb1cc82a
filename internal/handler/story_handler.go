package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"blood-connect/internal/domain"
	"blood-connect/internal/middleware"
	"blood-connect/internal/service/story"
)

type StoryHandler struct {
	storyService story.Service
}

func NewStoryHandler(storyService story.Service) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

func (h *StoryHandler) List(c *fiber.Ctx) error {
	stories, err := h.storyService.List(c.Context())
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"stories": stories})
}

func (h *StoryHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "story")
	if err != nil {
		return err
	}

	s, err := h.storyService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"story": s})
}

func (h *StoryHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateStoryInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	s, err := h.storyService.Create(c.Context(), middleware.GetIdentity(c), input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, fiber.Map{
		"message": "Story created successfully",
		"story":   s,
	})
}

func (h *StoryHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "story")
	if err != nil {
		return err
	}

	var input domain.UpdateStoryInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	s, err := h.storyService.Update(c.Context(), middleware.GetIdentity(c), id, input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"message": "Story updated successfully",
		"story":   s,
	})
}

func (h *StoryHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "story")
	if err != nil {
		return err
	}

	if err := h.storyService.Delete(c.Context(), middleware.GetIdentity(c), id); err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"message": "Story deleted successfully"})
}

func (h *StoryHandler) React(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "story")
	if err != nil {
		return err
	}

	var input domain.ReactInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	added, s, err := h.storyService.React(c.Context(), middleware.GetIdentity(c), id, input)
	if err != nil {
		return err
	}

	message := "Reaction removed"
	if added {
		message = "Reaction added"
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"message": message,
		"story":   s,
	})
}

func (h *StoryHandler) AddComment(c *fiber.Ctx) error {
	storyID, err := paramID(c, "id", "story")
	if err != nil {
		return err
	}

	var input domain.CommentInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	comment, err := h.storyService.AddComment(c.Context(), middleware.GetIdentity(c), storyID, input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, fiber.Map{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

func (h *StoryHandler) UpdateComment(c *fiber.Ctx) error {
	storyID, commentID, err := storyAndComment(c)
	if err != nil {
		return err
	}

	var input domain.CommentInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	comment, err := h.storyService.UpdateComment(c.Context(), middleware.GetIdentity(c), storyID, commentID, input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"message": "Comment updated successfully",
		"comment": comment,
	})
}

func (h *StoryHandler) DeleteComment(c *fiber.Ctx) error {
	storyID, commentID, err := storyAndComment(c)
	if err != nil {
		return err
	}

	if err := h.storyService.DeleteComment(c.Context(), middleware.GetIdentity(c), storyID, commentID); err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"message": "Comment deleted successfully"})
}

func (h *StoryHandler) LikeComment(c *fiber.Ctx) error {
	storyID, commentID, err := storyAndComment(c)
	if err != nil {
		return err
	}

	liked, err := h.storyService.ToggleCommentLike(c.Context(), middleware.GetIdentity(c), storyID, commentID)
	if err != nil {
		return err
	}

	message := "Comment unliked"
	if liked {
		message = "Comment liked"
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"message": message,
		"liked":   liked,
	})
}

func (h *StoryHandler) AddReply(c *fiber.Ctx) error {
	storyID, commentID, err := storyAndComment(c)
	if err != nil {
		return err
	}

	var input domain.ReplyInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	reply, err := h.storyService.AddReply(c.Context(), middleware.GetIdentity(c), storyID, commentID, input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, fiber.Map{
		"message": "Reply added successfully",
		"reply":   reply,
	})
}

func (h *StoryHandler) LikeReply(c *fiber.Ctx) error {
	storyID, commentID, err := storyAndComment(c)
	if err != nil {
		return err
	}
	replyID, err := paramID(c, "replyId", "reply")
	if err != nil {
		return err
	}

	liked, err := h.storyService.ToggleReplyLike(c.Context(), middleware.GetIdentity(c), storyID, commentID, replyID)
	if err != nil {
		return err
	}

	message := "Reply unliked"
	if liked {
		message = "Reply liked"
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"message": message,
		"liked":   liked,
	})
}

func storyAndComment(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	storyID, err := paramID(c, "id", "story")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	commentID, err := paramID(c, "commentId", "comment")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return storyID, commentID, nil
}
