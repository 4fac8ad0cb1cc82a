package handler

import (
	"github.com/gofiber/fiber/v2"

	"blood-connect/internal/domain"
	"blood-connect/internal/service/patient"
)

type PatientHandler struct {
	patientService patient.Service
}

func NewPatientHandler(patientService patient.Service) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

func (h *PatientHandler) Register(c *fiber.Ctx) error {
	var input domain.RegisterPatientInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	p, err := h.patientService.Register(c.Context(), input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, fiber.Map{
		"message": "Patient registered successfully",
		"patient": p,
	})
}

func (h *PatientHandler) List(c *fiber.Ctx) error {
	patients, err := h.patientService.List(c.Context(), domain.PatientFilter{
		Search:        c.Query("search"),
		EventInterest: c.Query("eventInterest"),
		Sort:          c.Query("sort"),
	})
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"patients": patients,
		"count":    len(patients),
	})
}

func (h *PatientHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "patient")
	if err != nil {
		return err
	}

	p, err := h.patientService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"patient": p})
}
