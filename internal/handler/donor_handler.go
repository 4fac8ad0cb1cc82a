package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"blood-connect/internal/domain"
	"blood-connect/internal/middleware"
	"blood-connect/internal/service/donor"
	"blood-connect/internal/service/export"
	"blood-connect/internal/service/media"
)

type DonorHandler struct {
	donorService  donor.Service
	exportService export.Service
}

func NewDonorHandler(donorService donor.Service, exportService export.Service) *DonorHandler {
	return &DonorHandler{
		donorService:  donorService,
		exportService: exportService,
	}
}

// Register accepts JSON or a multipart form with an optional "avatar" file.
func (h *DonorHandler) Register(c *fiber.Ctx) error {
	var input domain.RegisterDonorInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	var avatar *media.File
	if fh, err := c.FormFile("avatar"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return middleware.BadRequest("Invalid avatar file")
		}
		defer f.Close()

		avatar = &media.File{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			Reader:      f,
		}
	}

	d, err := h.donorService.Register(c.Context(), middleware.GetIdentity(c), input, avatar)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, fiber.Map{"donor": d})
}

func (h *DonorHandler) List(c *fiber.Ctx) error {
	donors, err := h.donorService.List(c.Context(), donorFilter(c))
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"donors": donors})
}

func (h *DonorHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "donor")
	if err != nil {
		return err
	}

	d, err := h.donorService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"donor": d})
}

func (h *DonorHandler) GetMine(c *fiber.Ctx) error {
	d, err := h.donorService.GetMine(c.Context(), middleware.GetIdentity(c))
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"donor": d})
}

func (h *DonorHandler) UpdateMine(c *fiber.Ctx) error {
	var input domain.UpdateDonorInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	d, err := h.donorService.UpdateMine(c.Context(), middleware.GetIdentity(c), input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"message": "Donor profile updated successfully",
		"donor":   d,
	})
}

func (h *DonorHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "donor")
	if err != nil {
		return err
	}

	var input domain.UpdateDonorInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	d, err := h.donorService.Update(c.Context(), id, input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"message": "Donor updated successfully",
		"donor":   d,
	})
}

func (h *DonorHandler) Block(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "donor")
	if err != nil {
		return err
	}

	d, err := h.donorService.Block(c.Context(), middleware.GetIdentity(c), id)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"message": "Donor blocked",
		"donor":   d,
	})
}

func (h *DonorHandler) Unblock(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "donor")
	if err != nil {
		return err
	}

	d, err := h.donorService.Unblock(c.Context(), middleware.GetIdentity(c), id)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"message": "Donor unblocked",
		"donor":   d,
	})
}

func (h *DonorHandler) Export(c *fiber.Ctx) error {
	data, err := h.exportService.ExportDonors(c.Context(), donorFilter(c))
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("donors-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

func donorFilter(c *fiber.Ctx) domain.DonorFilter {
	return domain.DonorFilter{
		BloodGroup:     bloodGroupQuery(c, "bloodGroup"),
		Gender:         c.Query("gender"),
		Search:         c.Query("search"),
		Sort:           c.Query("sort"),
		IncludeBlocked: c.QueryBool("includeBlocked", false),
	}
}
