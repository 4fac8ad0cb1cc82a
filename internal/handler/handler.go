package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"blood-connect/internal/domain"
	"blood-connect/internal/middleware"
	"blood-connect/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	Donor        *DonorHandler
	BloodRequest *BloodRequestHandler
	Alert        *AlertHandler
	Story        *StoryHandler
	Patient      *PatientHandler
	Audit        *AuditHandler
	Dashboard    *DashboardHandler
	System       *SystemHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Donor:        NewDonorHandler(services.Donor, services.Export),
		BloodRequest: NewBloodRequestHandler(services.BloodRequest),
		Alert:        NewAlertHandler(services.Alert),
		Story:        NewStoryHandler(services.Story),
		Patient:      NewPatientHandler(services.Patient),
		Audit:        NewAuditHandler(services.Audit),
		Dashboard:    NewDashboardHandler(services.Dashboard),
		System:       NewSystemHandler(),
	}
}

// respond writes the success envelope with payload merged in.
func respond(c *fiber.Ctx, status int, payload fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

func paramID(c *fiber.Ctx, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid " + label + " ID")
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	return nil
}

// parseOptionalBody accepts an empty body as the zero value.
func parseOptionalBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return parseBody(c, out)
}

// bloodGroupQuery reads a blood group from the query string. An unencoded
// "+" arrives as a space, which no valid group contains.
func bloodGroupQuery(c *fiber.Ctx, key string) string {
	return strings.ReplaceAll(c.Query(key), " ", "+")
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.PaginationParams{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 20),
	}
	params.Validate()
	return params
}
