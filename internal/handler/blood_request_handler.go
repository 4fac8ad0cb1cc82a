package handler

import (
	"github.com/gofiber/fiber/v2"

	"blood-connect/internal/domain"
	"blood-connect/internal/middleware"
	"blood-connect/internal/service/bloodrequest"
)

type BloodRequestHandler struct {
	requestService bloodrequest.Service
}

func NewBloodRequestHandler(requestService bloodrequest.Service) *BloodRequestHandler {
	return &BloodRequestHandler{requestService: requestService}
}

func (h *BloodRequestHandler) Create(c *fiber.Ctx) error {
	var input domain.BloodRequestInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	req, err := h.requestService.Create(c.Context(), middleware.GetIdentity(c), input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, fiber.Map{
		"message": "Blood request created successfully",
		"request": req,
	})
}

func (h *BloodRequestHandler) List(c *fiber.Ctx) error {
	requests, err := h.requestService.List(c.Context(), domain.BloodRequestFilter{
		Status:     c.Query("status"),
		BloodGroup: bloodGroupQuery(c, "bloodGroup"),
	})
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"requests": requests})
}

func (h *BloodRequestHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "blood request")
	if err != nil {
		return err
	}

	req, err := h.requestService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"request": req})
}

func (h *BloodRequestHandler) Accept(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "blood request")
	if err != nil {
		return err
	}

	var input domain.AcceptRequestInput
	if err := parseOptionalBody(c, &input); err != nil {
		return err
	}

	req, err := h.requestService.Accept(c.Context(), id, input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"message": "Blood request accepted successfully",
		"request": req,
	})
}

func (h *BloodRequestHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "blood request")
	if err != nil {
		return err
	}

	var input domain.BloodRequestInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	req, err := h.requestService.Update(c.Context(), middleware.GetIdentity(c), id, input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"message": "Blood request updated successfully",
		"request": req,
	})
}

func (h *BloodRequestHandler) SetStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "blood request")
	if err != nil {
		return err
	}

	var input domain.StatusPatchInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	req, err := h.requestService.SetStatus(c.Context(), middleware.GetIdentity(c), id, input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"message": "Blood request updated successfully",
		"request": req,
	})
}

func (h *BloodRequestHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "blood request")
	if err != nil {
		return err
	}

	if err := h.requestService.Delete(c.Context(), middleware.GetIdentity(c), id); err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"message": "Blood request deleted successfully"})
}

func (h *BloodRequestHandler) Match(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "blood request")
	if err != nil {
		return err
	}

	req, donors, err := h.requestService.Match(c.Context(), id)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"request": req,
		"donors":  donors,
	})
}
