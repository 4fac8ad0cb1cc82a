package handler

import (
	"github.com/gofiber/fiber/v2"

	"blood-connect/internal/service/audit"
)

type AuditHandler struct {
	auditService audit.Service
}

func NewAuditHandler(auditService audit.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) GetRecentActivities(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	logs, err := h.auditService.GetRecentActivities(c.Context(), limit)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"logs": logs})
}

func (h *AuditHandler) List(c *fiber.Ctx) error {
	page, err := h.auditService.List(c.Context(), getPaginationParams(c))
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"logs":       page.Data,
		"page":       page.Page,
		"pageSize":   page.PageSize,
		"totalItems": page.TotalItems,
		"totalPages": page.TotalPages,
		"hasNext":    page.HasNext,
	})
}

func (h *AuditHandler) ListByEntity(c *fiber.Ctx) error {
	entityID, err := paramID(c, "entityId", "entity")
	if err != nil {
		return err
	}

	logs, err := h.auditService.ListByEntity(c.Context(), c.Params("entityType"), entityID)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"logs": logs})
}
