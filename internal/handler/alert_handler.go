package handler

import (
	"github.com/gofiber/fiber/v2"

	"blood-connect/internal/domain"
	"blood-connect/internal/service/alert"
)

type AlertHandler struct {
	alertService alert.Service
}

func NewAlertHandler(alertService alert.Service) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

func (h *AlertHandler) List(c *fiber.Ctx) error {
	filter := domain.AlertFilter{
		UserID: c.Query("userId"),
		Type:   c.Query("type"),
	}
	if v := c.Query("isRead"); v != "" {
		isRead := v == "true"
		filter.IsRead = &isRead
	}

	alerts, err := h.alertService.List(c.Context(), filter)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"alerts": alerts})
}

func (h *AlertHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.alertService.UnreadCount(c.Context(), c.Query("userId"))
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"count": count})
}

func (h *AlertHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "alert")
	if err != nil {
		return err
	}

	a, err := h.alertService.MarkAsRead(c.Context(), id)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"message": "Alert marked as read",
		"alert":   a,
	})
}

func (h *AlertHandler) MarkAllAsRead(c *fiber.Ctx) error {
	var input struct {
		UserID string `json:"userId"`
	}
	if err := parseOptionalBody(c, &input); err != nil {
		return err
	}

	updated, err := h.alertService.MarkAllAsRead(c.Context(), input.UserID)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"message": "All alerts marked as read",
		"updated": updated,
	})
}
